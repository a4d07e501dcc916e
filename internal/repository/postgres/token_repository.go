package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"myRoomStore/domain"
)

// TokenRepository is the durable half of the refresh-token denylist. Revoked
// tokens stay revoked across process restarts.
type TokenRepository struct {
	DB *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{
		DB: db,
	}
}

// Revoke records the token's jti. Revoking an already-revoked token is a
// no-op, so logout is idempotent.
func (r *TokenRepository) Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	entry := domain.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now(),
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(&entry).Error
}

func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64

	err := r.DB.WithContext(ctx).Model(&domain.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// PurgeExpired removes entries whose token has expired on its own. Safe to
// run at any time; a purged entry can never resurrect a valid token.
func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&domain.RevokedToken{})

	return result.RowsAffected, result.Error
}
