package controllers

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/lucakurth/techfinder-backend/api/middleware"
	"github.com/lucakurth/techfinder-backend/api/responses"
	"github.com/lucakurth/techfinder-backend/internal/users"
	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
)

type userResponse struct {
	Success bool           `json:"success"`
	User    *users.UserDTO `json:"user"`
}

// UserGet returns the account matching the authenticated session. Requesting
// any other account is forbidden.
func UserGet(repo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user repository unavailable"))
			return
		}

		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := requireSelf(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user"))
			return
		}

		responses.WriteSuccess(w, userResponse{Success: true, User: users.FromModel(user)})
	}
}

// UserDelete removes the authenticated account and its wishlist entries.
func UserDelete(repo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user repository unavailable"))
			return
		}

		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := requireSelf(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := repo.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user"))
			return
		}

		responses.WriteSuccess(w, deleteResponse{Success: true})
	}
}

// requireSelf distinguishes a missing session (401) from a session for a
// different account (403).
func requireSelf(ctx context.Context, id uint) error {
	sessionUserID := middleware.UserIDFromContext(ctx)
	if sessionUserID == 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if sessionUserID != id {
		return pkgerrors.New(pkgerrors.CodeForbidden, "access restricted to own account")
	}
	return nil
}
