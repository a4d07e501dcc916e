package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"myRoomStore/domain"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	jwtSecret  []byte
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

// InitJWT sets the signing secret and token lifetimes. Must be called once
// at startup before any token is issued or parsed.
func InitJWT(secret string, access, refresh time.Duration) {
	jwtSecret = []byte(secret)
	if access > 0 {
		accessTTL = access
	}
	if refresh > 0 {
		refreshTTL = refresh
	}
}

// Claims holds the typed JWT payload. The jti (RegisteredClaims.ID) of
// refresh tokens is what the revocation denylist stores.
type Claims struct {
	UserID    uint        `json:"user_id"`
	Role      domain.Role `json:"role"`
	IsStaff   bool        `json:"is_staff"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

func generate(userID uint, role domain.Role, isStaff bool, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		IsStaff:   isStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// GenerateAccessToken creates a short-lived signed access token.
func GenerateAccessToken(userID uint, role domain.Role, isStaff bool) (string, error) {
	return generate(userID, role, isStaff, TokenTypeAccess, accessTTL)
}

// GenerateRefreshToken creates a longer-lived signed refresh token.
func GenerateRefreshToken(userID uint, role domain.Role, isStaff bool) (string, error) {
	return generate(userID, role, isStaff, TokenTypeRefresh, refreshTTL)
}

// ParseJWT validates signature and expiry and returns the typed claims.
func ParseJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
