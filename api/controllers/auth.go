package controllers

import (
	"net/http"

	"github.com/lucakurth/techfinder-backend/api/middleware"
	"github.com/lucakurth/techfinder-backend/api/responses"
	"github.com/lucakurth/techfinder-backend/api/validators"
	"github.com/lucakurth/techfinder-backend/internal/auth"
	pkgAuth "github.com/lucakurth/techfinder-backend/pkg/auth"
	"github.com/lucakurth/techfinder-backend/pkg/config"
	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
)

type registerResponse struct {
	Success  bool   `json:"success"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

type statusResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        uint   `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
}

// Register creates a new account.
func Register(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Register(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, registerResponse{
			Success:  true,
			UserID:   result.UserID,
			Username: result.Username,
		})
	}
}

// Login authenticates and installs the session cookie.
func Login(svc auth.Service, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Login(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(sessionCfg, result.Token, 0))

		responses.WriteSuccess(w, loginResponse{
			Success:  true,
			UserID:   result.User.ID,
			Username: result.User.Username,
		})
	}
}

// Logout revokes the session and clears the cookie. It succeeds even when no
// session is present.
func Logout(svc auth.Service, jwtCfg config.JWTConfig, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			// request may carry a cookie that never went through Auth
			if cookie, err := r.Cookie(sessionCfg.CookieName); err == nil && cookie.Value != "" {
				if claims, err := pkgAuth.ParseSessionToken(jwtCfg, cookie.Value); err == nil {
					sessionID = claims.ID
				}
			}
		}

		if err := svc.Logout(ctx, sessionID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(sessionCfg, "", -1))
		responses.WriteSuccess(w, logoutResponse{Success: true})
	}
}

// AuthStatus reports whether the caller holds a live session.
func AuthStatus(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		status, err := svc.Status(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp := statusResponse{Authenticated: status.Authenticated}
		if status.User != nil {
			resp.UserID = status.User.ID
			resp.Username = status.User.Username
		}
		responses.WriteSuccess(w, resp)
	}
}

// sessionCookie builds the HttpOnly session cookie. maxAge < 0 clears it.
func sessionCookie(cfg config.SessionConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
