package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"myRoomStore/domain"
	"myRoomStore/internal/middleware"
	"myRoomStore/pkg/logger"
)

type ProductService interface {
	GetAllProducts(ctx context.Context, search string, isStaff bool) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id uint, isStaff bool) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(service ProductService) *ProductHandler {
	return &ProductHandler{
		productService: service,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Room        string `json:"room"`
	Image       string `json:"image"`
	Stock       int    `json:"stock" validate:"gte=0"`
	IsArchived  bool   `json:"is_archived"`
}

func (r ProductRequest) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return domain.Product{}, domain.NewValidationError("price", "price must be a decimal number")
	}

	return domain.Product{
		Title:       r.Title,
		Description: r.Description,
		Price:       price.Round(2),
		Room:        r.Room,
		Image:       r.Image,
		Stock:       r.Stock,
		IsArchived:  r.IsArchived,
	}, nil
}

// GetAllProducts is public; anonymous callers see non-archived rows only.
// Supports ?search= substring matching over title, description and room.
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	search := c.QueryParam("search")
	isStaff := middleware.IsStaff(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx, search, isStaff)
	if err != nil {
		logger.Error("Failed to list products", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, productID, middleware.IsStaff(c))
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product": product,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product, err := req.toDomain()
	if err != nil {
		return writeDomainError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.productService.CreateProduct(ctx, &product)
	if err != nil {
		logger.Error("Failed to create product", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": created,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product, err := req.toDomain()
	if err != nil {
		return writeDomainError(c, err)
	}
	product.ID = productID

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, &product)
	if err != nil {
		logger.Error("Failed to update product", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": updated,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		logger.Error("Failed to delete product", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully",
	})
}
