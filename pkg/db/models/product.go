package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog listing.
type Product struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;size:200;not null;uniqueIndex:products_name_key"`
	Description  string          `gorm:"column:description;type:text;not null"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL     *string         `gorm:"column:image_url;size:500"`
	ExternalLink *string         `gorm:"column:external_link;size:500"`
	Category     *string         `gorm:"column:category;size:100"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	WishlistItems []WishlistItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
