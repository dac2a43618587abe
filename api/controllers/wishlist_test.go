package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lucakurth/techfinder-backend/api/middleware"
	"github.com/lucakurth/techfinder-backend/internal/products"
	"github.com/lucakurth/techfinder-backend/internal/wishlist"
	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
)

type stubWishlistService struct {
	entries     []wishlist.EntryDTO
	getErr      error
	addedItem   *wishlist.ItemDTO
	addErr      error
	removeErr   error
	lastUserID  uint
	lastProduct uint
}

func (s *stubWishlistService) GetWishlist(ctx context.Context, userID uint) ([]wishlist.EntryDTO, error) {
	s.lastUserID = userID
	return s.entries, s.getErr
}

func (s *stubWishlistService) AddItem(ctx context.Context, userID, productID uint) (*wishlist.ItemDTO, error) {
	s.lastUserID = userID
	s.lastProduct = productID
	return s.addedItem, s.addErr
}

func (s *stubWishlistService) RemoveItem(ctx context.Context, userID, productID uint) error {
	s.lastUserID = userID
	s.lastProduct = productID
	return s.removeErr
}

func authedRequest(method, target string, body string, userID uint) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestWishlistListReturnsEntries(t *testing.T) {
	svc := &stubWishlistService{entries: []wishlist.EntryDTO{
		{Product: products.ProductDTO{ID: 3, Name: "Headphones"}, AddedAt: time.Now()},
	}}
	handler := WishlistList(svc, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/wishlist", "", 7))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastUserID != 7 {
		t.Fatalf("expected session user 7, got %d", svc.lastUserID)
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["count"] != float64(1) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWishlistListForUserRejectsOtherAccount(t *testing.T) {
	svc := &stubWishlistService{}
	router := chi.NewRouter()
	router.Get("/api/wishlist/{userId}", WishlistListForUser(svc, testLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/wishlist/9", "", 7))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWishlistListForUserMatchingAccount(t *testing.T) {
	svc := &stubWishlistService{}
	router := chi.NewRouter()
	router.Get("/api/wishlist/{userId}", WishlistListForUser(svc, testLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/wishlist/7", "", 7))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastUserID != 7 {
		t.Fatalf("expected lookup for user 7, got %d", svc.lastUserID)
	}
}

func TestWishlistAddCreated(t *testing.T) {
	svc := &stubWishlistService{addedItem: &wishlist.ItemDTO{ID: 1, UserID: 7, ProductID: 3}}
	handler := WishlistAdd(svc, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/wishlist", `{"product_id":3}`, 7))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if svc.lastProduct != 3 {
		t.Fatalf("expected product 3, got %d", svc.lastProduct)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWishlistAddDuplicateConflicts(t *testing.T) {
	svc := &stubWishlistService{addErr: pkgerrors.New(pkgerrors.CodeConflict, "product already in wishlist")}
	handler := WishlistAdd(svc, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/wishlist", `{"product_id":3}`, 7))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "product already in wishlist" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWishlistRemoveAbsentNotFound(t *testing.T) {
	svc := &stubWishlistService{removeErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not in wishlist")}
	handler := WishlistRemove(svc, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/wishlist", `{"product_id":3}`, 7))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestWishlistRemoveSucceeds(t *testing.T) {
	svc := &stubWishlistService{}
	handler := WishlistRemove(svc, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/wishlist", `{"product_id":3}`, 7))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWishlistAddRejectsMissingProductID(t *testing.T) {
	svc := &stubWishlistService{}
	handler := WishlistAdd(svc, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/wishlist", `{}`, 7))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
