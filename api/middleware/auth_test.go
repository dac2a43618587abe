package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/lucakurth/techfinder-backend/pkg/auth"
	"github.com/lucakurth/techfinder-backend/pkg/config"
)

type fakeChecker struct {
	sessions map[string]bool
	err      error
}

func (f *fakeChecker) HasSession(_ context.Context, sessionID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.sessions[sessionID], nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "techfinder",
		ExpirationMinutes: 30,
	}
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{CookieName: "techfinder_session"}
}

func mintToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintSessionToken(testJWTConfig(), time.Now().UTC(), pkgAuth.SessionTokenPayload{
		UserID:   7,
		Username: "alice",
		JTI:      jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthAcceptsCookieSession(t *testing.T) {
	checker := &fakeChecker{sessions: map[string]bool{"sess-1": true}}
	var gotUserID uint
	var gotUsername string
	handler := Auth(testJWTConfig(), testSessionConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotUsername = UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)
	req.AddCookie(&http.Cookie{Name: "techfinder_session", Value: mintToken(t, "sess-1")})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if gotUserID != 7 || gotUsername != "alice" {
		t.Fatalf("expected identity seeded, got user=%d name=%q", gotUserID, gotUsername)
	}
}

func TestAuthAcceptsBearerFallback(t *testing.T) {
	checker := &fakeChecker{sessions: map[string]bool{"sess-1": true}}
	handler := Auth(testJWTConfig(), testSessionConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "sess-1"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRejectsMissingAndRevokedSessions(t *testing.T) {
	checker := &fakeChecker{sessions: map[string]bool{}}
	handler := Auth(testJWTConfig(), testSessionConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// no cookie at all
	req := httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", rec.Code)
	}

	// valid token but revoked session
	req = httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)
	req.AddCookie(&http.Cookie{Name: "techfinder_session", Value: mintToken(t, "revoked")})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", rec.Code)
	}

	// garbage token
	req = httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)
	req.AddCookie(&http.Cookie{Name: "techfinder_session", Value: "not-a-token"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", rec.Code)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	checker := &fakeChecker{sessions: map[string]bool{"sess-1": true}}
	var seen uint
	handler := OptionalAuth(testJWTConfig(), testSessionConfig(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous, got %d", rec.Code)
	}
	if seen != 0 {
		t.Fatalf("expected no identity for anonymous, got %d", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "techfinder_session", Value: mintToken(t, "sess-1")})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != 7 {
		t.Fatalf("expected identity seeded, got %d", seen)
	}
}
