// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test runs against its own migrated sqlite database.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"marketdash/internal/ai"
	"marketdash/internal/appstate"
	"marketdash/internal/database"
	"marketdash/internal/generator"
	"marketdash/internal/models"
	"marketdash/internal/store"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	name     string
	response string
	err      error
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) Generate(_ context.Context, _, _ string) (string, error) {
	return m.response, m.err
}

// fakeImages implements generator.ImageClient.
type fakeImages struct {
	result *ai.ImageResult
	err    error
	key    string
}

func (f *fakeImages) Generate(_ context.Context, apiKey string, _ ai.ImageRequest) (*ai.ImageResult, error) {
	f.key = apiKey
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

// testDB opens a fresh sqlite database and runs migrations.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Connect(database.DialectSQLite, filepath.Join(t.TempDir(), "handlers.db"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	DB         *database.DB
	Assets     *store.AssetStore
	Settings   *store.SettingsStore
	State      *appstate.Context
	AIRegistry *ai.Registry
	Images     *fakeImages
	API        *API
}

// newTestEnv creates a complete test environment with all handler
// dependencies. The AI registry holds a single "test" provider.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	assets := store.NewAssetStore(db)
	settings := store.NewSettingsStore(db)

	state, err := appstate.Load(context.Background(), store.NewAppStateStore(db), nil)
	if err != nil {
		t.Fatalf("appstate.Load: %v", err)
	}

	registry := ai.NewRegistry("test", nil)
	registry.Register("test", &mockAIProvider{name: "test", response: "{}"})

	images := &fakeImages{result: &ai.ImageResult{
		URL:   "https://images.example.com/oven.png",
		Cost:  0.04,
		Model: "dall-e-3",
	}}
	gen := generator.New(settings, registry, images)

	api := New(assets, settings, state, gen, registry, ai.ProviderConfig{
		Referer: "http://localhost:8080",
		Title:   "marketdash",
	}, nil)
	api.now = func() time.Time { return testNow }

	return &testEnv{
		DB:         db,
		Assets:     assets,
		Settings:   settings,
		State:      state,
		AIRegistry: registry,
		Images:     images,
		API:        api,
	}
}

// setMockAIResponse reconfigures the test env's AI mock to return a given response.
func setMockAIResponse(env *testEnv, response string, err error) {
	env.AIRegistry.Register("test", &mockAIProvider{
		name:     "test",
		response: response,
		err:      err,
	})
}

// saveSettings stores a complete brand profile.
func saveSettings(t *testing.T, env *testEnv) {
	t.Helper()
	err := env.Settings.Save(context.Background(), &models.BusinessSettings{
		BusinessName: "Acme",
		Name:         "Jo",
		Tone:         "friendly",
		ICP:          "small bakeries",
		Keywords:     []string{"sourdough"},
	})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
}

// saveAsset stores data as an asset created at the given time.
func saveAsset(t *testing.T, env *testEnv, data models.AssetData, at time.Time) *models.Asset {
	t.Helper()
	a := models.NewAsset(data, at)
	if err := env.Assets.Save(context.Background(), a); err != nil {
		t.Fatalf("save asset: %v", err)
	}
	return a
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// call runs handler with a JSON body. A non-empty id is set as the {id}
// URL parameter.
func call(handler http.HandlerFunc, method, target, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if id != "" {
		req = withChiURLParam(req, "id", id)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// decodeJSON decodes the recorder body into a value of type T.
func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}
