package database

import (
	"fmt"
	"log/slog"
	"time"
)

// Seed populates an empty development database with a sample brand profile
// so the generators can be tried without filling in the settings form.
// Existing settings are never touched.
func Seed(db *DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM business_settings").Scan(&count); err != nil {
		return fmt.Errorf("seed check settings: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	now := time.Now().UTC().Format(TimeLayout)
	_, err := db.Exec(db.Rebind(`
		INSERT INTO business_settings (id, business_name, name, tone, icp, dos, donts, keywords, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`), "Acme Studio", "Alex", "Friendly, confident and practical",
		"Owners of small service businesses who want more inbound leads",
		`["Use concrete examples","Keep sentences short"]`,
		`["Use jargon","Make unverifiable claims"]`,
		`["marketing","small business","lead generation"]`,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("seed insert settings: %w", err)
	}

	slog.Info("database seeded with sample business settings", "business", "Acme Studio")
	return nil
}
