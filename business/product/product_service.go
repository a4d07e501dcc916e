package product

import (
	"context"

	"github.com/shopspring/decimal"

	"myRoomStore/domain"
	"myRoomStore/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context, search string, includeArchived bool) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

// GetAllProducts lists the catalog. Archived rows are only visible to staff.
func (s *productService) GetAllProducts(ctx context.Context, search string, isStaff bool) ([]domain.Product, error) {
	products, err := s.productRepo.FindAll(ctx, search, isStaff)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint, isStaff bool) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find product by id", err)
		return nil, err
	}

	if product.IsArchived && !isStaff {
		return nil, domain.ErrNotFound
	}

	return &product, nil
}

func (s *productService) validateProduct(product *domain.Product) error {
	if product.Title == "" {
		logger.Error("Invalid product data: title is required")
		return domain.NewValidationError("title", "title is required")
	}

	if product.Price.LessThanOrEqual(decimal.Zero) {
		logger.Error("Invalid product data: price must be greater than 0")
		return domain.NewValidationError("price", "price must be greater than 0")
	}

	if product.Stock < 0 {
		logger.Error("Invalid product data: stock cannot be negative")
		return domain.NewValidationError("stock", "stock cannot be negative")
	}

	return nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("Failed to create new product", err)
		return nil, err
	}

	logger.Info("Product created", "product_id", product.ID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID == 0 {
		return nil, domain.NewValidationError("id", "product ID is required")
	}

	if err := s.validateProduct(product); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, product.ID); err != nil {
		logger.Error("Product not found", err)
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("Failed to update product", err)
		return nil, err
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("Failed to fetch updated product", err)
		return nil, err
	}

	return &updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		logger.Error("Product not found", err)
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete product", err)
		return err
	}

	logger.Info("Product deleted", "product_id", id)

	return nil
}
