package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"column:username;unique;not null" json:"username"`
	Email     string    `gorm:"column:email;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Role      Role      `gorm:"column:role;default:user" json:"role"`
	IsBlocked bool      `gorm:"column:is_blocked;default:false" json:"is_blocked"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	IsStaff   bool      `gorm:"column:is_staff;default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// CanManageStore reports whether the account may mutate accounts and catalog
// data. This is the single capability check; handlers never compare role
// strings directly.
func (u User) CanManageStore() bool {
	return u.IsStaff || u.Role == RoleAdmin
}

// Profile is the 1:1 extension of a user account. It has no lifecycle of its
// own and is removed together with its owning user.
type Profile struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Bio     string `gorm:"column:bio;type:text" json:"bio"`
	Avatar  string `gorm:"column:avatar" json:"avatar"`
	Phone   string `gorm:"column:phone" json:"phone"`
	Address string `gorm:"column:address;type:text" json:"address"`
}

func (Profile) TableName() string {
	return "profiles"
}
