package postgres

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"myRoomStore/domain"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateFromCart converts the caller's cart into an immutable order inside a
// single transaction: snapshot the cart rows (locked so a concurrent
// placement cannot charge the same row twice), compute the total from prices
// read at this instant, create the order and one item per cart row, then
// purge the snapshotted rows. If anything fails, nothing persists.
func (r *OrdersRepository) CreateFromCart(ctx context.Context, userID uint, address, paymentMethod string) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cartItems []domain.CartItem

		query := tx.Preload("Product").Where("user_id = ?", userID)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.Find(&cartItems).Error; err != nil {
			return err
		}

		if len(cartItems) == 0 {
			return domain.ErrEmptyCart
		}

		total := decimal.Zero
		for _, item := range cartItems {
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order = domain.Order{
			UserID:        userID,
			Total:         total,
			Address:       address,
			PaymentMethod: paymentMethod,
			Status:        domain.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		cartIDs := make([]uint, 0, len(cartItems))
		for _, item := range cartItems {
			orderItem := domain.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			cartIDs = append(cartIDs, item.ID)
		}

		// Only rows that were part of the snapshot are removed.
		if err := tx.Where("id IN ?", cartIDs).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return r.findByID(ctx, order.ID)
}

func (r *OrdersRepository) findByID(ctx context.Context, id uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, err
	}

	return order, nil
}

// FindAllByUser is the owner-scoped listing.
func (r *OrdersRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// FindAll is the staff view across all accounts.
func (r *OrdersRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").Preload("Items.Product").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrdersRepository) FindByIDForUser(ctx context.Context, id, userID uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	return r.findByID(ctx, id)
}
