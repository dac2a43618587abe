package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucakurth/techfinder-backend/pkg/db/models"
)

// ProductDTO is the transport shape for a catalog listing.
type ProductDTO struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     *string         `json:"image_url,omitempty"`
	ExternalLink *string         `json:"external_link,omitempty"`
	Category     *string         `json:"category,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateProductDTO holds the validated payload to create a product.
type CreateProductDTO struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	ImageURL     *string
	ExternalLink *string
	Category     *string
}

// UpdateProductDTO holds optional mutation values for a product.
type UpdateProductDTO struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	ImageURL     *string
	ExternalLink *string
	Category     *string
}

// ProductPage is one keyset page of the catalog. NextCursor is empty on
// the final page.
type ProductPage struct {
	Products   []ProductDTO
	NextCursor string
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	Category string
	Query    string
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}

	return &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		ExternalLink: p.ExternalLink,
		Category:     p.Category,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (c CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		ImageURL:     c.ImageURL,
		ExternalLink: c.ExternalLink,
		Category:     c.Category,
	}
}
