package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"column:title;not null" json:"title"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Room        string          `gorm:"column:room" json:"room"`
	Image       string          `gorm:"column:image" json:"image"`
	Stock       int             `gorm:"column:stock;default:0;check:stock >= 0" json:"stock"`
	IsArchived  bool            `gorm:"column:is_archived;default:false" json:"is_archived"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
