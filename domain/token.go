package domain

import "time"

// RevokedToken is one entry of the durable refresh-token denylist. Rows
// become eligible for cleanup once ExpiresAt has passed, since the token
// would no longer verify anyway.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"column:jti;uniqueIndex;not null" json:"jti"`
	UserID    uint      `gorm:"column:user_id;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	RevokedAt time.Time `gorm:"column:revoked_at" json:"revoked_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
