package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myRoomStore/domain"
	"myRoomStore/pkg/utils"
)

func invoke(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return rec, c, handler(c)
}

func TestAuthMiddleware(t *testing.T) {
	utils.InitJWT("test-secret", 15*time.Minute, time.Hour)

	access, err := utils.GenerateAccessToken(7, domain.RoleUser, false)
	require.NoError(t, err)
	refresh, err := utils.GenerateRefreshToken(7, domain.RoleUser, false)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid access token", header: "Bearer " + access, status: http.StatusOK},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", status: http.StatusUnauthorized},
		{name: "refresh token rejected", header: "Bearer " + refresh, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, err := invoke(AuthMiddleware(), tt.header)
			require.NoError(t, err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	utils.InitJWT("test-secret", 15*time.Minute, time.Hour)

	access, err := utils.GenerateAccessToken(7, domain.RoleAdmin, false)
	require.NoError(t, err)

	_, c, err := invoke(AuthMiddleware(), "Bearer "+access)
	require.NoError(t, err)

	assert.Equal(t, uint(7), UserID(c))
	assert.Equal(t, domain.RoleAdmin, Role(c))
	// Admin role implies the staff capability even without the flag.
	assert.True(t, IsStaff(c))
}

func TestOptionalAuth(t *testing.T) {
	utils.InitJWT("test-secret", 15*time.Minute, time.Hour)

	access, err := utils.GenerateAccessToken(9, domain.RoleUser, true)
	require.NoError(t, err)

	// Anonymous request passes through with no identity.
	rec, c, err := invoke(OptionalAuth(), "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, UserID(c))
	assert.False(t, IsStaff(c))

	// A broken token is treated as anonymous, not rejected.
	rec, _, err = invoke(OptionalAuth(), "Bearer garbage")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A valid token populates identity.
	rec, c, err = invoke(OptionalAuth(), "Bearer "+access)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(9), UserID(c))
	assert.True(t, IsStaff(c))
}

func TestStaffOnly(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := StaffOnly()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// No staff capability in context.
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// With the capability set.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("is_staff", true)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
