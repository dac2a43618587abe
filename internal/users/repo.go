package users

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lucakurth/techfinder-backend/internal/repo"
	"github.com/lucakurth/techfinder-backend/pkg/db"
	"github.com/lucakurth/techfinder-backend/pkg/db/models"
)

var (
	// ErrUsernameTaken reports a username uniqueness collision.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken reports an email uniqueness collision.
	ErrEmailTaken = errors.New("email already registered")
)

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
	client *db.Client
}

// NewRepository constructs a users repo bound to the provided DB client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{Base: repo.NewBase(client.DB()), client: client}
}

// Create inserts a new user after checking both uniqueness constraints inside
// a single transaction. A duplicate leaves the store untouched.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		if err := tx.Create(user).Error; err != nil {
			if db.IsUniqueViolation(err, "users_username_key") {
				return ErrUsernameTaken
			}
			if db.IsUniqueViolation(err, "users_email_key") {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername retrieves the user matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their numeric ID.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user and their wishlist entries in one transaction. The
// explicit child delete keeps the cascade portable across SQLite and Postgres.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
