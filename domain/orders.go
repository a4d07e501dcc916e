package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// Order is an immutable snapshot produced from a cart. Total is computed once
// at creation and never recomputed, even if product prices change later.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"column:user_id;not null;index" json:"user_id"`
	Total         decimal.Decimal `gorm:"column:total;type:decimal(10,2);not null" json:"total"`
	Address       string          `gorm:"column:address;not null" json:"address"`
	PaymentMethod string          `gorm:"column:payment_method;default:cod" json:"payment_method"`
	Status        OrderStatus     `gorm:"column:status;default:Pending" json:"status"`
	CreatedAt     time.Time       `json:"date"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	User  User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem exists only as a byproduct of order placement and is never
// mutated afterward.
type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"column:order_id;not null;index" json:"-"`
	ProductID uint `gorm:"column:product_id;not null" json:"-"`
	Quantity  int  `gorm:"column:quantity;default:1;check:quantity > 0" json:"quantity"`

	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"product"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
