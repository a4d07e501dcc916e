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
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		PlaceOrder(ctx context.Context, userID uint, address, paymentMethod string) (domain.Order, error)
		GetOrders(ctx context.Context, userID uint, isStaff bool) ([]domain.Order, error)
		GetOrder(ctx context.Context, id, userID uint, isStaff bool) (domain.Order, error)
	}

	// OrdersInput deliberately has no total, items or status fields; those
	// are derived server-side from the caller's cart.
	OrdersInput struct {
		Address       string `json:"address" validate:"required"`
		PaymentMethod string `json:"payment_method"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) PlaceOrder(c echo.Context) error {
	userID := middleware.UserID(c)

	var request OrdersInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order input", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.PlaceOrder(ctx, userID, request.Address, request.PaymentMethod)
	if err != nil {
		logger.Error("Failed to place order", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.ordersService.GetOrders(ctx, middleware.UserID(c), middleware.IsStaff(c))
	if err != nil {
		logger.Error("Failed to list orders", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	orderID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, orderID, middleware.UserID(c), middleware.IsStaff(c))
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
