package wishlist

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lucakurth/techfinder-backend/internal/products"
	"github.com/lucakurth/techfinder-backend/internal/users"
	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *products.Repository
	UserRepo     *users.Repository
}

// Service exposes business rules for wishlist management.
type Service interface {
	GetWishlist(ctx context.Context, userID uint) ([]EntryDTO, error)
	AddItem(ctx context.Context, userID, productID uint) (*ItemDTO, error)
	RemoveItem(ctx context.Context, userID, productID uint) error
}

type service struct {
	wishlistRepo *Repository
	productRepo  *products.Repository
	userRepo     *users.Repository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
		userRepo:     params.UserRepo,
	}, nil
}

// GetWishlist returns the user's saved products in insertion order.
func (s *service) GetWishlist(ctx context.Context, userID uint) ([]EntryDTO, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	entries, err := s.wishlistRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	return entries, nil
}

// AddItem ensures both sides of the pair exist, then saves it. A pair that is
// already present reports a conflict.
func (s *service) AddItem(ctx context.Context, userID, productID uint) (*ItemDTO, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if productID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	item, err := s.wishlistRepo.AddItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, ErrAlreadyExists.Error())
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
	}
	return &ItemDTO{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		AddedAt:   item.AddedAt,
	}, nil
}

// RemoveItem drops the pair. An absent pair reports not found.
func (s *service) RemoveItem(ctx context.Context, userID, productID uint) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	if err := s.wishlistRepo.RemoveItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not in wishlist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return nil
}

func (s *service) ensureUser(ctx context.Context, userID uint) error {
	if userID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return nil
}
