package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"myRoomStore/domain"
)

type WishlistRepository struct {
	DB *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{
		DB: db,
	}
}

// Create inserts a wishlist entry. The owning user id comes from the
// authenticated identity, never from client input. A second entry for the
// same (user, product) pair is a validation error.
func (r *WishlistRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewValidationError("product_id", "this product is already in your wishlist")
	}

	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Preload("Product").First(item, item.ID).Error
}

// FindAllByUser is pre-filtered to the owner; there is no unscoped listing.
func (r *WishlistRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem

	err := r.DB.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *WishlistRepository) FindByIDForUser(ctx context.Context, id, userID uint) (domain.WishlistItem, error) {
	var item domain.WishlistItem

	err := r.DB.WithContext(ctx).Preload("Product").
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WishlistItem{}, domain.ErrNotFound
		}
		return domain.WishlistItem{}, err
	}

	return item, nil
}

func (r *WishlistRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
