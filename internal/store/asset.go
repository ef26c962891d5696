// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements persistence for assets, business settings and
// the application state on top of database/sql. Stores return wrapped
// errors and never log.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketdash/internal/database"
	"marketdash/internal/models"
)

var (
	// ErrNotFound is returned by targeted updates when the row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTypeChanged is returned when Save is asked to overwrite an asset
	// with a payload of a different type.
	ErrTypeChanged = errors.New("asset type cannot change")
)

// AssetFilter narrows List. Nil fields match everything; set fields are
// combined with AND.
type AssetFilter struct {
	Type   *models.AssetType
	Status *models.AssetStatus
}

// AssetStats holds asset counts for the dashboard overview.
type AssetStats struct {
	Total    int                        `json:"total"`
	ByType   map[models.AssetType]int   `json:"byType"`
	ByStatus map[models.AssetStatus]int `json:"byStatus"`
}

// AssetStore handles all asset-related database operations.
type AssetStore struct {
	db  *database.DB
	now func() time.Time
}

// NewAssetStore creates a new AssetStore with the given database connection.
func NewAssetStore(db *database.DB) *AssetStore {
	return &AssetStore{db: db, now: time.Now}
}

const assetColumns = `id, type, status, created_at, updated_at, data`

// List returns assets matching the filter, newest first.
func (s *AssetStore) List(ctx context.Context, f AssetFilter) ([]models.Asset, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != nil {
		where = append(where, "type = ?")
		args = append(args, string(*f.Type))
	}
	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}

	query := `SELECT ` + assetColumns + ` FROM assets`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var items []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return items, nil
}

// FindByID retrieves an asset by its ID. Returns nil if not found.
func (s *AssetStore) FindByID(ctx context.Context, id string) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx, s.db.Rebind(
		`SELECT `+assetColumns+` FROM assets WHERE id = ?`), id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Save inserts the asset or fully replaces the stored record with the same
// ID. The timestamps are written as given, but they are read back in UTC:
// the instant survives, the original offset does not. Replacing an asset
// with a payload of another type fails with ErrTypeChanged.
func (s *AssetStore) Save(ctx context.Context, a *models.Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	data, err := models.MarshalData(a.Data)
	if err != nil {
		return fmt.Errorf("encode asset data: %w", err)
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO assets (id, type, status, created_at, updated_at, data)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			data = excluded.data
		WHERE assets.type = excluded.type
	`), a.ID, string(a.Type()), string(a.Status),
		database.FormatTime(a.CreatedAt), database.FormatTime(a.UpdatedAt), string(data),
	)
	if err != nil {
		return fmt.Errorf("save asset: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save asset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("save asset %s: %w", a.ID, ErrTypeChanged)
	}
	return nil
}

// Delete removes an asset by ID. Deleting a missing asset is not an error.
func (s *AssetStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM assets WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// UpdateStatus changes only the status and refreshes updated_at. The stored
// updated_at never moves backwards.
func (s *AssetStore) UpdateStatus(ctx context.Context, id string, status models.AssetStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", models.ErrInvalidAsset, status)
	}

	now := database.FormatTime(s.now())
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE assets SET
			status = ?,
			updated_at = CASE WHEN updated_at > ? THEN updated_at ELSE ? END
		WHERE id = ?
	`), string(status), now, now, id)
	if err != nil {
		return fmt.Errorf("update asset status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update asset status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update asset status %s: %w", id, ErrNotFound)
	}
	return nil
}

// Search returns every asset whose JSON form contains query, ignoring case,
// newest first. Keys, enum values and timestamps are part of the searched
// text, so a query such as "seo" matches every SEO article.
func (s *AssetStore) Search(ctx context.Context, query string) ([]models.Asset, error) {
	all, err := s.List(ctx, AssetFilter{})
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}

	needle := strings.ToLower(query)
	var matches []models.Asset
	for _, a := range all {
		b, err := models.EncodeAsset(a)
		if err != nil {
			return nil, fmt.Errorf("search assets: encode %s: %w", a.ID, err)
		}
		if strings.Contains(strings.ToLower(string(b)), needle) {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

// Stats counts assets by type and by status.
func (s *AssetStore) Stats(ctx context.Context) (*AssetStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, status, COUNT(*) FROM assets GROUP BY type, status`)
	if err != nil {
		return nil, fmt.Errorf("asset stats: %w", err)
	}
	defer rows.Close()

	stats := &AssetStats{
		ByType:   make(map[models.AssetType]int, len(models.AssetTypes)),
		ByStatus: make(map[models.AssetStatus]int, len(models.AssetStatuses)),
	}
	for _, t := range models.AssetTypes {
		stats.ByType[t] = 0
	}
	for _, st := range models.AssetStatuses {
		stats.ByStatus[st] = 0
	}

	for rows.Next() {
		var (
			t, st string
			n     int
		)
		if err := rows.Scan(&t, &st, &n); err != nil {
			return nil, fmt.Errorf("scan asset stats: %w", err)
		}
		stats.ByType[models.AssetType(t)] += n
		stats.ByStatus[models.AssetStatus(st)] += n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("asset stats: %w", err)
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanAsset reads one row of assetColumns. sql.ErrNoRows is returned
// unwrapped so callers can detect a missing row.
func scanAsset(row scanner) (*models.Asset, error) {
	var (
		id, typ, status      string
		createdAt, updatedAt string
		data                 string
	)
	if err := row.Scan(&id, &typ, &status, &createdAt, &updatedAt, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan asset: %w", err)
	}

	payload, err := models.DecodeData(models.AssetType(typ), []byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", id, err)
	}
	a := &models.Asset{ID: id, Status: models.AssetStatus(status), Data: payload}
	if a.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", id, err)
	}
	if a.UpdatedAt, err = database.ParseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", id, err)
	}
	return a, nil
}
