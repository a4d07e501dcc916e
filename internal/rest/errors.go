package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"myRoomStore/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeDomainError maps domain errors onto HTTP statuses. Internal detail
// never leaves the boundary; anything unrecognized becomes a generic 500.
func writeDomainError(c echo.Context, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: vErr.Message, Field: vErr.Field})
	}

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrAccountBlocked):
		return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "internal server error"})
	}
}
