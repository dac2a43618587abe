package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lucakurth/techfinder-backend/pkg/config"
	"github.com/lucakurth/techfinder-backend/pkg/db/models"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(context.Background(), config.DBConfig{
		DSN:    "file::memory:?cache=shared",
		Driver: config.DriverSQLite,
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	if err := client.DB().AutoMigrate(&models.User{}, &models.Product{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return client
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected missing DSN to fail")
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestWithTxCommits(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.User{
			Username:     "txuser",
			Email:        "txuser@example.com",
			PasswordHash: "hash",
		}).Error
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.User{}).Where("username = ?", "txuser").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected committed user, got count %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{
			Username:     "rollback",
			Email:        "rollback@example.com",
			PasswordHash: "hash",
		}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom error, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.User{}).Where("username = ?", "rollback").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, got count %d", count)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	client := newTestClient(t)

	user := models.User{Username: "dupe", Email: "dupe@example.com", PasswordHash: "hash"}
	if err := client.DB().Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	err := client.DB().Create(&models.User{
		Username:     "dupe",
		Email:        "other@example.com",
		PasswordHash: "hash",
	}).Error
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected IsUniqueViolation to match: %v", err)
	}
	// sqlite reports "UNIQUE constraint failed: users.username", never the
	// index name, so a named lookup still matches.
	if !IsUniqueViolation(err, "users_username_key") {
		t.Fatalf("expected named lookup to match sqlite violation: %v", err)
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error must not match")
	}
}

func TestIsUniqueViolationPostgres(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	if !IsUniqueViolation(dup, "") {
		t.Fatal("expected bare lookup to match 23505")
	}
	if !IsUniqueViolation(fmt.Errorf("create user: %w", dup), "users_username_key") {
		t.Fatal("expected wrapped 23505 to match its constraint")
	}
	if IsUniqueViolation(dup, "users_email_key") {
		t.Fatal("mismatched constraint must not match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation must not match")
	}
}
