package wishlist

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lucakurth/techfinder-backend/internal/products"
	"github.com/lucakurth/techfinder-backend/internal/repo"
	"github.com/lucakurth/techfinder-backend/pkg/db"
	"github.com/lucakurth/techfinder-backend/pkg/db/models"
)

// ErrAlreadyExists reports a second add for the same (user, product) pair.
var ErrAlreadyExists = errors.New("product already in wishlist")

// Repository encapsulates wishlist persistence.
type Repository struct {
	repo.Base
	client *db.Client
}

// NewRepository constructs a wishlist repository bound to the provided DB client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{Base: repo.NewBase(client.DB()), client: client}
}

// AddItem inserts a wishlist entry. A pair that is already present reports
// ErrAlreadyExists and leaves the store unchanged.
func (r *Repository) AddItem(ctx context.Context, userID, productID uint) (*models.WishlistItem, error) {
	item := models.WishlistItem{UserID: userID, ProductID: productID}

	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.WishlistItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		if err := tx.Create(&item).Error; err != nil {
			if db.IsUniqueViolation(err, "wishlist_items_user_product_key") {
				return ErrAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes the pair. An absent pair reports gorm.ErrRecordNotFound.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID uint) error {
	result := r.DB(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasItem reports whether the pair is currently saved.
func (r *Repository) HasItem(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type entryRecord struct {
	models.Product
	AddedAt time.Time `gorm:"column:added_at"`
}

// ListForUser returns the user's saved products in insertion order.
func (r *Repository) ListForUser(ctx context.Context, userID uint) ([]EntryDTO, error) {
	var records []entryRecord
	err := r.DB(ctx).
		Table("wishlist_items wi").
		Select("p.*, wi.added_at AS added_at").
		Joins("JOIN products p ON p.id = wi.product_id").
		Where("wi.user_id = ?", userID).
		Order("wi.added_at ASC").
		Order("wi.id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	entries := make([]EntryDTO, 0, len(records))
	for i := range records {
		entries = append(entries, EntryDTO{
			Product: *products.FromModel(&records[i].Product),
			AddedAt: records[i].AddedAt,
		})
	}
	return entries, nil
}
