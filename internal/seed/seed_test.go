package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/lucakurth/techfinder-backend/pkg/config"
	"github.com/lucakurth/techfinder-backend/pkg/db"
	"github.com/lucakurth/techfinder-backend/pkg/db/models"
)

func newTestClient(t *testing.T) *db.Client {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
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

func TestRunInsertsSampleCatalogOnce(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	inserted, err := Run(ctx, client, nil)
	if err != nil {
		t.Fatalf("seed run: %v", err)
	}
	if inserted != len(sampleProducts) {
		t.Fatalf("expected %d inserts, got %d", len(sampleProducts), inserted)
	}

	again, err := Run(ctx, client, nil)
	if err != nil {
		t.Fatalf("second seed run: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected idempotent rerun, got %d inserts", again)
	}

	var count int64
	if err := client.DB().Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if count != int64(len(sampleProducts)) {
		t.Fatalf("expected %d products, got %d", len(sampleProducts), count)
	}
}
