package database

import (
	"testing"
	"time"
)

func TestSeedIdempotent(t *testing.T) {
	db := testDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when the settings table is empty; calling it
	// twice must not fail or duplicate the row.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM business_settings").Scan(&n); err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if n != 1 {
		t.Errorf("expected exactly 1 settings row, got %d", n)
	}
}

func TestSeedKeepsExistingSettings(t *testing.T) {
	db := testDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	now := FormatTime(time.Now())
	if _, err := db.Exec(`INSERT INTO business_settings (id, business_name, created_at, updated_at) VALUES (1, 'Mine', ?, ?)`, now, now); err != nil {
		t.Fatalf("insert settings: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	var name string
	if err := db.QueryRow("SELECT business_name FROM business_settings WHERE id = 1").Scan(&name); err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if name != "Mine" {
		t.Errorf("business_name: got %q, want %q", name, "Mine")
	}
}
