package models

import "time"

// WishlistItem links a user to a saved product. The composite unique index
// guarantees at most one row per (user, product) pair.
type WishlistItem struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null;index:wishlist_items_user_id_idx;uniqueIndex:wishlist_items_user_product_key"`
	ProductID uint      `gorm:"column:product_id;not null;index:wishlist_items_product_id_idx;uniqueIndex:wishlist_items_user_product_key"`
	AddedAt   time.Time `gorm:"column:added_at;autoCreateTime"`
}
