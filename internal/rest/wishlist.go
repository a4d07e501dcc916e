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
	WishlistHandler struct {
		validate        *validator.Validate
		wishlistService WishlistService
		timeout         time.Duration
	}

	WishlistService interface {
		AddItem(ctx context.Context, userID, productID uint) (domain.WishlistItem, error)
		GetItems(ctx context.Context, userID uint) ([]domain.WishlistItem, error)
		GetItem(ctx context.Context, id, userID uint) (domain.WishlistItem, error)
		RemoveItem(ctx context.Context, id, userID uint) error
	}

	WishlistInput struct {
		ProductID uint `json:"product_id" validate:"required"`
	}
)

func NewWishlistHandler(wishlistService WishlistService) *WishlistHandler {
	return &WishlistHandler{
		validate:        validator.New(),
		wishlistService: wishlistService,
		timeout:         10 * time.Second,
	}
}

func (h *WishlistHandler) AddItem(c echo.Context) error {
	userID := middleware.UserID(c)

	var request WishlistInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate wishlist input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.wishlistService.AddItem(ctx, userID, request.ProductID)
	if err != nil {
		logger.Error("Failed to add wishlist item", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

func (h *WishlistHandler) GetItems(c echo.Context) error {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.wishlistService.GetItems(ctx, userID)
	if err != nil {
		logger.Error("Failed to list wishlist", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *WishlistHandler) GetItem(c echo.Context) error {
	itemID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid wishlist item ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.wishlistService.GetItem(ctx, itemID, middleware.UserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

func (h *WishlistHandler) RemoveItem(c echo.Context) error {
	itemID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid wishlist item ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.wishlistService.RemoveItem(ctx, itemID, middleware.UserID(c)); err != nil {
		logger.Error("Failed to remove wishlist item", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Wishlist item removed"))
}
