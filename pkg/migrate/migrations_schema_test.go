package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucakurth/techfinder-backend/pkg/migrate"
)

func TestInitialMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_initial_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no initial schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE users",
		"CONSTRAINT users_username_key UNIQUE (username)",
		"CONSTRAINT users_email_key UNIQUE (email)",
		"CREATE TABLE products",
		"CONSTRAINT products_name_key UNIQUE (name)",
		"CREATE TABLE wishlist_items",
		"REFERENCES users (id) ON DELETE CASCADE",
		"REFERENCES products (id) ON DELETE CASCADE",
		"CONSTRAINT wishlist_items_user_product_key UNIQUE (user_id, product_id)",
		"DROP TABLE IF EXISTS wishlist_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
