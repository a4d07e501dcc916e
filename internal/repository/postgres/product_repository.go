package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"myRoomStore/domain"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// FindAll lists products. A non-empty search term is matched as a
// case-insensitive substring against title, description and room.
// includeArchived is only ever true for staff callers.
func (r *ProductRepository) FindAll(ctx context.Context, search string, includeArchived bool) ([]domain.Product, error) {
	var products []domain.Product

	query := r.DB.WithContext(ctx).Model(&domain.Product{})
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(room) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	updateData := map[string]interface{}{
		"title":       product.Title,
		"description": product.Description,
		"price":       product.Price,
		"room":        product.Room,
		"image":       product.Image,
		"stock":       product.Stock,
		"is_archived": product.IsArchived,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete cascades into wishlist, cart and order-item rows referencing the
// product, mirroring the source schema. Order history referencing the
// product is erased with it.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx.Where("product_id = ?", id).Delete(&domain.WishlistItem{})
		tx.Where("product_id = ?", id).Delete(&domain.CartItem{})
		tx.Where("product_id = ?", id).Delete(&domain.OrderItem{})

		result := tx.Delete(&domain.Product{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		return nil
	})
}
