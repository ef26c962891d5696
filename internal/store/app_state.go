package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketdash/internal/database"
	"marketdash/internal/models"
)

// AppStateStore keeps the application context as a single JSON document.
type AppStateStore struct {
	db  *database.DB
	now func() time.Time
}

// NewAppStateStore creates a new AppStateStore with the given database connection.
func NewAppStateStore(db *database.DB) *AppStateStore {
	return &AppStateStore{db: db, now: time.Now}
}

// Load returns the saved state. Returns nil if nothing was saved yet.
func (s *AppStateStore) Load(ctx context.Context) (*models.AppState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM app_state WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load app state: %w", err)
	}

	var st models.AppState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("decode app state: %w", err)
	}
	return &st, nil
}

// Save replaces the stored state.
func (s *AppStateStore) Save(ctx context.Context, st *models.AppState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode app state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO app_state (id, state, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`), string(b), database.FormatTime(s.now()))
	if err != nil {
		return fmt.Errorf("save app state: %w", err)
	}
	return nil
}
