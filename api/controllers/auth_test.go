package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lucakurth/techfinder-backend/api/middleware"
	"github.com/lucakurth/techfinder-backend/internal/auth"
	"github.com/lucakurth/techfinder-backend/internal/users"
	pkgAuth "github.com/lucakurth/techfinder-backend/pkg/auth"
	"github.com/lucakurth/techfinder-backend/pkg/config"
	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
)

type stubAuthService struct {
	registerResult *auth.RegisterResult
	registerErr    error
	loginResult    *auth.LoginResult
	loginErr       error
	logoutErr      error
	lastLogoutSID  string
	statusResult   *auth.StatusResult
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResult, error) {
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	s.lastLogoutSID = sessionID
	return s.logoutErr
}

func (s *stubAuthService) Status(ctx context.Context, userID uint) (*auth.StatusResult, error) {
	return s.statusResult, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func controllerJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "techfinder", ExpirationMinutes: 30}
}

func controllerSessionConfig() config.SessionConfig {
	return config.SessionConfig{CookieName: "techfinder_session"}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestRegisterSucceeds(t *testing.T) {
	svc := &stubAuthService{registerResult: &auth.RegisterResult{UserID: 12, Username: "alice"}}
	handler := Register(svc, testLogger())

	payload := `{"username":"alice","email":"alice@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["user_id"] != float64(12) || body["username"] != "alice" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRegisterAcceptsShortPassword(t *testing.T) {
	svc := &stubAuthService{registerResult: &auth.RegisterResult{UserID: 1, Username: "alice"}}
	handler := Register(svc, testLogger())

	payload := `{"username":"alice","email":"alice@x.com","password":"pw123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRegisterConflict(t *testing.T) {
	svc := &stubAuthService{registerErr: pkgerrors.New(pkgerrors.CodeConflict, "username already exists")}
	handler := Register(svc, testLogger())

	payload := `{"username":"alice","email":"alice@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["error"] != "username already exists" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	svc := &stubAuthService{registerResult: &auth.RegisterResult{UserID: 1, Username: "x"}}
	handler := Register(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(`{"username":"al"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	jwtCfg := controllerJWTConfig()
	token, err := pkgAuth.MintSessionToken(jwtCfg, time.Now(), pkgAuth.SessionTokenPayload{
		UserID:   7,
		Username: "alice",
		JTI:      "session-1",
	})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	svc := &stubAuthService{loginResult: &auth.LoginResult{
		Token: token,
		User:  &users.UserDTO{ID: 7, Username: "alice"},
	}}
	handler := Login(svc, controllerSessionConfig(), testLogger())

	payload := `{"username":"alice","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["user_id"] != float64(7) || body["username"] != "alice" {
		t.Fatalf("unexpected body: %v", body)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "techfinder_session" || cookie.Value != token {
		t.Fatalf("unexpected cookie %q=%q", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", cookie.SameSite)
	}
}

func TestLoginRejectedWithoutCookie(t *testing.T) {
	svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := Login(svc, controllerSessionConfig(), testLogger())

	payload := `{"username":"alice","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookie expected on failed login")
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["error"] != "invalid credentials" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestLogoutWithoutSessionSucceeds(t *testing.T) {
	svc := &stubAuthService{}
	handler := Logout(svc, controllerJWTConfig(), controllerSessionConfig(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestLogoutRevokesCookieSession(t *testing.T) {
	jwtCfg := controllerJWTConfig()
	token, err := pkgAuth.MintSessionToken(jwtCfg, time.Now(), pkgAuth.SessionTokenPayload{
		UserID:   7,
		Username: "alice",
		JTI:      "session-9",
	})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	svc := &stubAuthService{}
	handler := Logout(svc, jwtCfg, controllerSessionConfig(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "techfinder_session", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastLogoutSID != "session-9" {
		t.Fatalf("expected session-9 revoked, got %q", svc.lastLogoutSID)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookies)
	}
}

func TestAuthStatusAnonymous(t *testing.T) {
	svc := &stubAuthService{statusResult: &auth.StatusResult{Authenticated: false}}
	handler := AuthStatus(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["authenticated"] != false {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, present := body["user_id"]; present {
		t.Fatal("anonymous status must omit user_id")
	}
}

func TestAuthStatusAuthenticated(t *testing.T) {
	svc := &stubAuthService{statusResult: &auth.StatusResult{
		Authenticated: true,
		User:          &users.UserDTO{ID: 7, Username: "alice"},
	}}
	handler := AuthStatus(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["authenticated"] != true || body["user_id"] != float64(7) || body["username"] != "alice" {
		t.Fatalf("unexpected body: %v", body)
	}
}
