package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain. Handlers map these to HTTP statuses with
// errors.Is instead of matching on message text.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrEmptyCart          = errors.New("cart is empty")
)

// ValidationError carries field-level detail for malformed, duplicate or
// out-of-range input. It maps to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
