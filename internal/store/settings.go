// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

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

// SettingsStore persists the single business settings row.
type SettingsStore struct {
	db  *database.DB
	now func() time.Time
}

// NewSettingsStore creates a new SettingsStore with the given database connection.
func NewSettingsStore(db *database.DB) *SettingsStore {
	return &SettingsStore{db: db, now: time.Now}
}

// Get returns the stored settings. Returns nil if none have been saved yet.
func (s *SettingsStore) Get(ctx context.Context) (*models.BusinessSettings, error) {
	var (
		bs                   models.BusinessSettings
		dos, donts, keywords string
		createdAt            string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT business_name, name, logo, tone, icp, dos, donts, keywords, created_at
		FROM business_settings WHERE id = 1
	`).Scan(&bs.BusinessName, &bs.Name, &bs.Logo, &bs.Tone, &bs.ICP,
		&dos, &donts, &keywords, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	if err := decodeList(dos, &bs.BrandGuidelines.Dos); err != nil {
		return nil, fmt.Errorf("get settings: dos: %w", err)
	}
	if err := decodeList(donts, &bs.BrandGuidelines.Donts); err != nil {
		return nil, fmt.Errorf("get settings: donts: %w", err)
	}
	if err := decodeList(keywords, &bs.Keywords); err != nil {
		return nil, fmt.Errorf("get settings: keywords: %w", err)
	}
	if bs.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &bs, nil
}

// Save creates the settings row on first use and overwrites it afterwards.
// The original created_at is preserved; a zero CreatedAt on first save is
// set to now. On return bs.CreatedAt holds the stored value.
func (s *SettingsStore) Save(ctx context.Context, bs *models.BusinessSettings) error {
	dos, err := encodeList(bs.BrandGuidelines.Dos)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	donts, err := encodeList(bs.BrandGuidelines.Donts)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	keywords, err := encodeList(bs.Keywords)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	now := s.now().UTC()
	createdAt := bs.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	var stored string
	err = s.db.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO business_settings (id, business_name, name, logo, tone, icp, dos, donts, keywords, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			business_name = excluded.business_name,
			name = excluded.name,
			logo = excluded.logo,
			tone = excluded.tone,
			icp = excluded.icp,
			dos = excluded.dos,
			donts = excluded.donts,
			keywords = excluded.keywords,
			updated_at = excluded.updated_at
		RETURNING created_at
	`), bs.BusinessName, bs.Name, bs.Logo, bs.Tone, bs.ICP, dos, donts, keywords,
		database.FormatTime(createdAt), database.FormatTime(now),
	).Scan(&stored)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if bs.CreatedAt, err = database.ParseTime(stored); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// encodeList stores an ordered string list as a JSON array. A nil list is
// stored as [].
func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(raw string, dst *[]string) error {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return err
	}
	*dst = items
	return nil
}
