package domain

import "github.com/shopspring/decimal"

type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID uint `gorm:"column:product_id;not null" json:"-"`
	Quantity  int  `gorm:"column:quantity;default:1;check:quantity > 0" json:"quantity"`

	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal is price at read time times quantity. It is computed, never stored.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
