package wishlist

import (
	"context"

	"myRoomStore/domain"
	"myRoomStore/pkg/logger"
)

type WishlistRepository interface {
	Create(ctx context.Context, item *domain.WishlistItem) error
	FindAllByUser(ctx context.Context, userID uint) ([]domain.WishlistItem, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (domain.WishlistItem, error)
	DeleteForUser(ctx context.Context, id, userID uint) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type wishlistService struct {
	wishlistRepo WishlistRepository
	productRepo  ProductRepository
}

func NewWishlistService(wishlistRepo WishlistRepository, productRepo ProductRepository) *wishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// AddItem creates a wishlist entry for the caller. The owner comes from the
// authenticated identity; duplicates for the same product are rejected.
func (s *wishlistService) AddItem(ctx context.Context, userID, productID uint) (domain.WishlistItem, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		logger.Error("Product not found for wishlist", err)
		return domain.WishlistItem{}, err
	}

	item := domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}

	if err := s.wishlistRepo.Create(ctx, &item); err != nil {
		logger.Error("Failed to add wishlist item", err)
		return domain.WishlistItem{}, err
	}

	return item, nil
}

func (s *wishlistService) GetItems(ctx context.Context, userID uint) ([]domain.WishlistItem, error) {
	items, err := s.wishlistRepo.FindAllByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list wishlist", err)
		return nil, err
	}

	return items, nil
}

func (s *wishlistService) GetItem(ctx context.Context, id, userID uint) (domain.WishlistItem, error) {
	return s.wishlistRepo.FindByIDForUser(ctx, id, userID)
}

func (s *wishlistService) RemoveItem(ctx context.Context, id, userID uint) error {
	if err := s.wishlistRepo.DeleteForUser(ctx, id, userID); err != nil {
		logger.Error("Failed to remove wishlist item", err)
		return err
	}

	return nil
}
