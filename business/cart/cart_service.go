package cart

import (
	"context"

	"myRoomStore/domain"
	"myRoomStore/pkg/logger"
)

type CartRepository interface {
	Create(ctx context.Context, item *domain.CartItem) error
	FindAllByUser(ctx context.Context, userID uint) ([]domain.CartItem, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (domain.CartItem, error)
	UpdateQuantityForUser(ctx context.Context, id, userID uint, quantity int) error
	DeleteForUser(ctx context.Context, id, userID uint) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type cartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewCartService(cartRepo CartRepository, productRepo ProductRepository) *cartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem puts a product into the caller's cart. Quantity below 1 never
// reaches the store.
func (s *cartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.NewValidationError("quantity", "quantity must be at least 1")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		logger.Error("Product not found for cart", err)
		return domain.CartItem{}, err
	}

	item := domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	if err := s.cartRepo.Create(ctx, &item); err != nil {
		logger.Error("Failed to add cart item", err)
		return domain.CartItem{}, err
	}

	return item, nil
}

func (s *cartService) GetItems(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	items, err := s.cartRepo.FindAllByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list cart", err)
		return nil, err
	}

	return items, nil
}

func (s *cartService) GetItem(ctx context.Context, id, userID uint) (domain.CartItem, error) {
	return s.cartRepo.FindByIDForUser(ctx, id, userID)
}

// UpdateQuantity changes the quantity of one of the caller's cart rows.
func (s *cartService) UpdateQuantity(ctx context.Context, id, userID uint, quantity int) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.NewValidationError("quantity", "quantity must be at least 1")
	}

	if err := s.cartRepo.UpdateQuantityForUser(ctx, id, userID, quantity); err != nil {
		logger.Error("Failed to update cart quantity", err)
		return domain.CartItem{}, err
	}

	return s.cartRepo.FindByIDForUser(ctx, id, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, id, userID uint) error {
	if err := s.cartRepo.DeleteForUser(ctx, id, userID); err != nil {
		logger.Error("Failed to remove cart item", err)
		return err
	}

	return nil
}
