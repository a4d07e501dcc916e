package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"myRoomStore/domain"
	"myRoomStore/pkg/logger"
	jsonres "myRoomStore/pkg/response"
	"myRoomStore/pkg/utils"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxStaff  = "is_staff"
)

// AuthMiddleware validates the bearer access token and threads the caller's
// identity and role into the request context. No ambient "current user"
// state; downstream code reads identity through the accessors below.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			claims, err := utils.ParseJWT(tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			if claims.TokenType != utils.TokenTypeAccess {
				logger.Error("Non-access token presented on protected endpoint")
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			c.Set(ctxStaff, claims.IsStaff || claims.Role == domain.RoleAdmin)

			return next(c)
		}
	}
}

// OptionalAuth populates identity when a valid token is present but lets
// anonymous requests through. Used on public catalog reads so staff can see
// archived rows.
func OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return next(c)
			}

			claims, err := utils.ParseJWT(tokenParts[1])
			if err != nil || claims.TokenType != utils.TokenTypeAccess {
				return next(c)
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			c.Set(ctxStaff, claims.IsStaff || claims.Role == domain.RoleAdmin)

			return next(c)
		}
	}
}

// StaffOnly requires an authenticated admin/staff caller.
func StaffOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsStaff(c) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

// UserID returns the authenticated caller's account id, or 0 for anonymous.
func UserID(c echo.Context) uint {
	if id, ok := c.Get(ctxUserID).(uint); ok {
		return id
	}

	return 0
}

// Role returns the authenticated caller's role.
func Role(c echo.Context) domain.Role {
	if role, ok := c.Get(ctxRole).(domain.Role); ok {
		return role
	}

	return ""
}

// IsStaff reports whether the caller holds the admin/staff capability.
func IsStaff(c echo.Context) bool {
	if staff, ok := c.Get(ctxStaff).(bool); ok {
		return staff
	}

	return false
}
