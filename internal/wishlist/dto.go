package wishlist

import (
	"time"

	"github.com/lucakurth/techfinder-backend/internal/products"
)

// EntryDTO pairs a saved product with the moment it was added.
type EntryDTO struct {
	Product products.ProductDTO `json:"product"`
	AddedAt time.Time           `json:"added_at"`
}

// ItemDTO is the transport shape for a single wishlist row.
type ItemDTO struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}
