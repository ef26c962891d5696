// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache keeps the application context in Valkey. It is used instead
// of the SQL app_state table when a Valkey server is configured, so several
// processes on one machine share theme, keys and onboarding flags.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"marketdash/internal/models"
)

// DefaultStateKey is the Valkey key holding the app state document.
const DefaultStateKey = "marketdash:app_state"

// dialTimeout bounds the startup ping.
const dialTimeout = 5 * time.Second

// Dial opens a Valkey client for addr (host:port) and pings it. The state
// document is small, so a single connection per process is plenty.
func Dial(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		PoolSize:     2,
		DialTimeout:  dialTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", addr, err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}

// StateStore persists models.AppState as JSON under a single key. Entries
// never expire.
type StateStore struct {
	client *redis.Client
	key    string
}

// NewStateStore creates a state store backed by the given Valkey client.
// An empty key selects DefaultStateKey.
func NewStateStore(client *redis.Client, key string) *StateStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &StateStore{client: client, key: key}
}

// Load returns the stored state. Returns nil if the key does not exist.
func (s *StateStore) Load(ctx context.Context) (*models.AppState, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get app state: %w", err)
	}

	var st models.AppState
	if err := json.Unmarshal(val, &st); err != nil {
		return nil, fmt.Errorf("decode app state: %w", err)
	}
	return &st, nil
}

// Save replaces the stored state.
func (s *StateStore) Save(ctx context.Context, st *models.AppState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode app state: %w", err)
	}
	if err := s.client.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("valkey set app state: %w", err)
	}
	return nil
}
