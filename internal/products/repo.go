package products

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lucakurth/techfinder-backend/internal/repo"
	"github.com/lucakurth/techfinder-backend/pkg/db"
	"github.com/lucakurth/techfinder-backend/pkg/db/models"
	"github.com/lucakurth/techfinder-backend/pkg/pagination"
)

// ErrNameTaken reports a product name uniqueness collision.
var ErrNameTaken = errors.New("product name already exists")

// Repository encapsulates catalog persistence.
type Repository struct {
	repo.Base
	client *db.Client
}

// NewRepository constructs a products repo bound to the provided DB client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{Base: repo.NewBase(client.DB()), client: client}
}

// Create inserts a new product. The name check and insert run in one
// transaction so a duplicate performs no write.
func (r *Repository) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	product := dto.ToModel()
	product.Name = strings.TrimSpace(product.Name)

	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("name = ?", product.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNameTaken
		}
		if err := tx.Create(product).Error; err != nil {
			if db.IsUniqueViolation(err, "products_name_key") {
				return ErrNameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product by its numeric ID.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns catalog entries, optionally narrowed by category and a
// case-insensitive name search, ordered by ID.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.DB(ctx).Model(&models.Product{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var rows []models.Product
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPage returns one keyset page of catalog entries. It fetches one row
// beyond the limit to detect whether a next page exists.
func (r *Repository) ListPage(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Product, string, error) {
	limit := pagination.NormalizeLimit(page.Limit)
	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.DB(ctx).Model(&models.Product{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if cursor != nil {
		query = query.Where("id > ?", cursor.ID)
	}

	var rows []models.Product
	if err := query.Order("id ASC").Limit(pagination.LimitWithBuffer(page.Limit)).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		next = pagination.EncodeCursor(pagination.Cursor{ID: rows[len(rows)-1].ID})
	}
	return rows, next, nil
}

// Update applies the provided fields to an existing product. A name change
// that collides with another product is rejected without a write.
func (r *Repository) Update(ctx context.Context, id uint, dto UpdateProductDTO) (*models.Product, error) {
	var product models.Product
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}

		if dto.Name != nil {
			name := strings.TrimSpace(*dto.Name)
			if name != product.Name {
				var count int64
				if err := tx.Model(&models.Product{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return ErrNameTaken
				}
			}
			product.Name = name
		}
		if dto.Description != nil {
			product.Description = *dto.Description
		}
		if dto.Price != nil {
			product.Price = *dto.Price
		}
		if dto.ImageURL != nil {
			product.ImageURL = dto.ImageURL
		}
		if dto.ExternalLink != nil {
			product.ExternalLink = dto.ExternalLink
		}
		if dto.Category != nil {
			product.Category = dto.Category
		}

		if err := tx.Save(&product).Error; err != nil {
			if db.IsUniqueViolation(err, "products_name_key") {
				return ErrNameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes the product and any wishlist entries pointing at it.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}
