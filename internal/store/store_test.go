// store_test.go provides the shared test database helper for all store
// tests. Each test gets a fresh, migrated SQLite file in a temp directory.
package store

import (
	"path/filepath"
	"testing"
	"time"

	"marketdash/internal/database"
	"marketdash/internal/models"
)

// testDB opens a migrated database in t.TempDir(). A cleanup function is
// registered to close the connection when the test finishes.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Connect(database.DialectSQLite, filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// fixedClock returns a clock function reporting *now.
func fixedClock(now *time.Time) func() time.Time {
	return func() time.Time { return *now }
}

var baseTime = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

// newAsset builds a draft asset created at baseTime plus offset.
func newAsset(data models.AssetData, offset time.Duration) *models.Asset {
	return models.NewAsset(data, baseTime.Add(offset))
}

func guideArticle() *models.SEOArticle {
	return &models.SEOArticle{
		Title:       "Guide",
		Tags:        []string{"x"},
		Content:     "<p>a</p>",
		WordCount:   10,
		ImagePrompt: "p",
	}
}
