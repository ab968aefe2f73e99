package models

import "time"

// WishlistItem 心愿单项
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Owner     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_wishlist_owner_product" json:"owner"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_owner_product" json:"product_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
