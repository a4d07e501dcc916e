package domain

type WishlistItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"column:user_id;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint `gorm:"column:product_id;not null;uniqueIndex:idx_wishlist_user_product" json:"-"`

	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
