package products

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
	"github.com/lucakurth/techfinder-backend/pkg/pagination"
)

// Service exposes catalog management operations.
type Service interface {
	ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	ListProductsPage(ctx context.Context, filter ListFilter, page pagination.Params) (*ProductPage, error)
	GetProduct(ctx context.Context, id uint) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductDTO) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uint, input UpdateProductDTO) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: repo}, nil
}

// ListProducts returns the catalog narrowed by the optional filter.
func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	items := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return items, nil
}

// ListProductsPage returns one keyset page of the filtered catalog.
func (s *service) ListProductsPage(ctx context.Context, filter ListFilter, page pagination.Params) (*ProductPage, error) {
	rows, next, err := s.repo.ListPage(ctx, filter, page)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pagination cursor")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products page")
	}
	items := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return &ProductPage{Products: items, NextCursor: next}, nil
}

// GetProduct loads a single product.
func (s *service) GetProduct(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(product), nil
}

// CreateProduct validates and persists a new catalog entry.
func (s *service) CreateProduct(ctx context.Context, input CreateProductDTO) (*ProductDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	product, err := s.repo.Create(ctx, input)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, ErrNameTaken.Error())
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

// UpdateProduct applies a partial mutation to an existing product.
func (s *service) UpdateProduct(ctx context.Context, id uint, input UpdateProductDTO) (*ProductDTO, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name must not be empty")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	product, err := s.repo.Update(ctx, id, input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		case errors.Is(err, ErrNameTaken):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, ErrNameTaken.Error())
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
		}
	}
	return FromModel(product), nil
}

// DeleteProduct removes the product and its wishlist references.
func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}
