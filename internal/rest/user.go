package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	userService "myRoomStore/business/user"
	"myRoomStore/domain"
	"myRoomStore/pkg/logger"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (domain.User, error)
	Login(ctx context.Context, username, password string) (userService.TokenPair, domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	CreateUser(ctx context.Context, user *domain.User) (domain.User, error)
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, patch userService.UserPatch) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{
		userService: service,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type AdminCreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=admin user"`
	IsBlocked bool   `json:"is_blocked"`
	IsStaff   bool   `json:"is_staff"`
}

type AdminUpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	IsBlocked *bool   `json:"is_blocked,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	IsStaff   *bool   `json:"is_staff,omitempty"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate register request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	_, err := h.userService.Register(ctx, &domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logger.Error("Failed to register user", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate login request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tokens, user, err := h.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		logger.Error("Failed to login", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"tokens":  tokens,
		"user":    user,
	})
}

// Logout revokes the refresh token supplied in the body. Requires a valid
// access token.
func (h *UserHandler) Logout(c echo.Context) error {
	var req RefreshRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "refresh token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.Logout(ctx, req.Refresh); err != nil {
		logger.Error("Failed to logout", err)
		// Logout reports malformed tokens as a bad request, not 401.
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid token"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logged out successfully",
	})
}

func (h *UserHandler) RefreshToken(c echo.Context) error {
	var req RefreshRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "refresh token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	access, err := h.userService.Refresh(ctx, req.Refresh)
	if err != nil {
		logger.Error("Failed to refresh token", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"access": access,
	})
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req AdminCreateUserRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.CreateUser(ctx, &domain.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		IsBlocked: req.IsBlocked,
		IsStaff:   req.IsStaff,
	})
	if err != nil {
		logger.Error("Failed to create user", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// UpdateUser handles both PUT and PATCH: only supplied fields change.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	var req AdminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.UpdateUser(ctx, userID, userService.UserPatch{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		IsBlocked: req.IsBlocked,
		IsActive:  req.IsActive,
		IsStaff:   req.IsStaff,
	})
	if err != nil {
		logger.Error("Failed to update user", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.DeleteUser(ctx, userID); err != nil {
		logger.Error("Failed to delete user", err)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
	})
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}
