package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"myRoomStore/domain"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

// Create inserts a cart row for the authenticated owner. Quantity has been
// validated (>= 1) by the service.
func (r *CartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Preload("Product").First(item, item.ID).Error
}

func (r *CartRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem

	err := r.DB.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *CartRepository) FindByIDForUser(ctx context.Context, id, userID uint) (domain.CartItem, error) {
	var item domain.CartItem

	err := r.DB.WithContext(ctx).Preload("Product").
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CartItem{}, domain.ErrNotFound
		}
		return domain.CartItem{}, err
	}

	return item, nil
}

func (r *CartRepository) UpdateQuantityForUser(ctx context.Context, id, userID uint, quantity int) error {
	result := r.DB.WithContext(ctx).Model(&domain.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *CartRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
