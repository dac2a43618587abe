package controllers

import (
	"net/http"

	"github.com/lucakurth/techfinder-backend/api/middleware"
	"github.com/lucakurth/techfinder-backend/api/responses"
	"github.com/lucakurth/techfinder-backend/api/validators"
	"github.com/lucakurth/techfinder-backend/internal/wishlist"
	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
)

type wishlistItemPayload struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
}

type wishlistResponse struct {
	Success  bool                `json:"success"`
	Products []wishlist.EntryDTO `json:"products"`
	Count    int                 `json:"count"`
}

type wishlistItemResponse struct {
	Success bool             `json:"success"`
	Item    wishlist.ItemDTO `json:"item"`
}

// WishlistList returns the session user's saved products in insertion order.
func WishlistList(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		entries, err := svc.GetWishlist(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistResponse{
			Success:  true,
			Products: entries,
			Count:    len(entries),
		})
	}
}

// WishlistListForUser returns a wishlist by user ID. The ID must match the
// session user.
func WishlistListForUser(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		userID, err := pathID(r, "userId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := requireSelf(ctx, userID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entries, err := svc.GetWishlist(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistResponse{
			Success:  true,
			Products: entries,
			Count:    len(entries),
		})
	}
}

// WishlistAdd saves a product for the session user. Adding the same product
// twice reports a conflict.
func WishlistAdd(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload wishlistItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.AddItem(ctx, middleware.UserIDFromContext(ctx), payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, wishlistItemResponse{Success: true, Item: *item})
	}
}

// WishlistRemove drops a saved product for the session user.
func WishlistRemove(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload wishlistItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveItem(ctx, middleware.UserIDFromContext(ctx), payload.ProductID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, deleteResponse{Success: true})
	}
}
