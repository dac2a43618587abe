package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lucakurth/techfinder-backend/api/responses"
	"github.com/lucakurth/techfinder-backend/api/validators"
	"github.com/lucakurth/techfinder-backend/internal/products"
	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
	"github.com/lucakurth/techfinder-backend/pkg/pagination"
)

type createProductPayload struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description" validate:"required"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	ImageURL     *string         `json:"image_url,omitempty" validate:"omitempty,max=500"`
	ExternalLink *string         `json:"external_link,omitempty" validate:"omitempty,max=500"`
	Category     *string         `json:"category,omitempty" validate:"omitempty,max=100"`
}

type updateProductPayload struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Description  *string          `json:"description,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	ImageURL     *string          `json:"image_url,omitempty" validate:"omitempty,max=500"`
	ExternalLink *string          `json:"external_link,omitempty" validate:"omitempty,max=500"`
	Category     *string          `json:"category,omitempty" validate:"omitempty,max=100"`
}

type productResponse struct {
	Success bool                `json:"success"`
	Product products.ProductDTO `json:"product"`
}

type productListResponse struct {
	Success    bool                  `json:"success"`
	Products   []products.ProductDTO `json:"products"`
	Count      int                   `json:"count"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// ProductsList returns the catalog, optionally filtered by category and a
// name search term.
func ProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		query := r.URL.Query()
		filter := products.ListFilter{
			Category: strings.TrimSpace(query.Get("category")),
			Query:    strings.TrimSpace(query.Get("q")),
		}

		// Paged mode is opt-in; the plain listing returns the whole catalog.
		if query.Has("limit") || query.Has("cursor") {
			limit := 0
			if query.Has("limit") {
				parsed, err := strconv.Atoi(query.Get("limit"))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be an integer"))
					return
				}
				limit = parsed
			}
			page, err := svc.ListProductsPage(ctx, filter, pagination.Params{
				Limit:  limit,
				Cursor: query.Get("cursor"),
			})
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, productListResponse{
				Success:    true,
				Products:   page.Products,
				Count:      len(page.Products),
				NextCursor: page.NextCursor,
			})
			return
		}

		items, err := svc.ListProducts(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, productListResponse{
			Success:  true,
			Products: items,
			Count:    len(items),
		})
	}
}

// ProductGet returns a single catalog entry.
func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.GetProduct(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, productResponse{Success: true, Product: *product})
	}
}

// ProductCreate adds a new catalog entry.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.CreateProduct(ctx, products.CreateProductDTO{
			Name:         payload.Name,
			Description:  payload.Description,
			Price:        payload.Price,
			ImageURL:     payload.ImageURL,
			ExternalLink: payload.ExternalLink,
			Category:     payload.Category,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, productResponse{Success: true, Product: *product})
	}
}

// ProductUpdate applies a partial mutation.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(ctx, id, products.UpdateProductDTO{
			Name:         payload.Name,
			Description:  payload.Description,
			Price:        payload.Price,
			ImageURL:     payload.ImageURL,
			ExternalLink: payload.ExternalLink,
			Category:     payload.Category,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, productResponse{Success: true, Product: *product})
	}
}

// ProductDelete removes a catalog entry and its wishlist references.
func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteProduct(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, deleteResponse{Success: true})
	}
}

// pathID parses a positive numeric path parameter.
func pathID(r *http.Request, name string) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a positive integer")
	}
	return uint(value), nil
}
