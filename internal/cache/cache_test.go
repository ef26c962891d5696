// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"reflect"
	"testing"

	"github.com/redis/go-redis/v9"

	"marketdash/internal/models"
)

const testStateKey = "test:app_state"

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		client.Del(ctx, testStateKey)
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestDial(t *testing.T) {
	addr := envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379")

	client, err := Dial(context.Background(), addr, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	// Verify connection.
	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestStateStoreLoadMissing(t *testing.T) {
	client := testValkeyClient(t)
	s := NewStateStore(client, testStateKey)
	client.Del(context.Background(), testStateKey)

	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st != nil {
		t.Errorf("expected nil state, got %+v", st)
	}
}

func TestStateStoreSaveAndLoad(t *testing.T) {
	client := testValkeyClient(t)
	s := NewStateStore(client, testStateKey)
	ctx := context.Background()

	want := models.AppState{APIKey: "sealed:xyz", Theme: models.ThemeDark, Initialized: true}
	if err := s.Save(ctx, &want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, &want) {
		t.Errorf("Load: got %+v, want %+v", got, want)
	}

	// No expiry is set on the key.
	ttl, err := client.TTL(ctx, testStateKey).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl >= 0 {
		t.Errorf("expected no TTL, got %v", ttl)
	}
}

func TestDialUnreachable(t *testing.T) {
	// Port 1 on loopback refuses connections.
	if _, err := Dial(context.Background(), "127.0.0.1:1", ""); err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}

func TestNewStateStoreDefaultKey(t *testing.T) {
	s := NewStateStore(nil, "")
	if s.key != DefaultStateKey {
		t.Errorf("key: got %q, want %q", s.key, DefaultStateKey)
	}
}
