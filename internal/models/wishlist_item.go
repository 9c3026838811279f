package models

import "time"

// WishlistItem 收藏表，(user_id, product_id) 唯一保证加入幂等
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                    // 主键
	UserID    uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null" json:"user_id"`    // 用户ID
	ProductID uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null" json:"product_id"` // 商品ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                 // 创建时间
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
