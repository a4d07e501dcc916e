package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myRoomStore/domain"
	"myRoomStore/internal/middleware"
	"myRoomStore/pkg/logger"
)

type (
	CartHandler struct {
		validate    *validator.Validate
		cartService CartService
		timeout     time.Duration
	}

	CartService interface {
		AddItem(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, error)
		GetItems(ctx context.Context, userID uint) ([]domain.CartItem, error)
		GetItem(ctx context.Context, id, userID uint) (domain.CartItem, error)
		UpdateQuantity(ctx context.Context, id, userID uint, quantity int) (domain.CartItem, error)
		RemoveItem(ctx context.Context, id, userID uint) error
	}

	CartInput struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity" validate:"required,gte=1"`
	}

	CartUpdateInput struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
)

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		validate:    validator.New(),
		cartService: cartService,
		timeout:     10 * time.Second,
	}
}

func (h *CartHandler) AddItem(c echo.Context) error {
	userID := middleware.UserID(c)

	var request CartInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate cart input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.cartService.AddItem(ctx, userID, request.ProductID, request.Quantity)
	if err != nil {
		logger.Error("Failed to add cart item", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

func (h *CartHandler) GetItems(c echo.Context) error {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.cartService.GetItems(ctx, userID)
	if err != nil {
		logger.Error("Failed to list cart", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *CartHandler) GetItem(c echo.Context) error {
	itemID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cart item ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.cartService.GetItem(ctx, itemID, middleware.UserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	itemID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cart item ID"})
	}

	var request CartUpdateInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate cart update", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.cartService.UpdateQuantity(ctx, itemID, middleware.UserID(c), request.Quantity)
	if err != nil {
		logger.Error("Failed to update cart item", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	itemID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cart item ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.RemoveItem(ctx, itemID, middleware.UserID(c)); err != nil {
		logger.Error("Failed to remove cart item", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cart item removed"))
}
