// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the marketdash JSON API.
// Handlers are grouped by concern (settings, assets, generation, app state)
// and receive their dependencies through the API struct.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"marketdash/internal/ai"
	"marketdash/internal/appstate"
	"marketdash/internal/generator"
	"marketdash/internal/models"
	"marketdash/internal/storage"
	"marketdash/internal/store"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 2 << 20

// API groups all HTTP handlers and their dependencies.
type API struct {
	assets    *store.AssetStore
	settings  *store.SettingsStore
	state     *appstate.Context
	generator *generator.Service
	registry  *ai.Registry
	storage   *storage.Client

	// openRouter is the configured OpenRouter setup. A key entered through
	// PATCH /api/state replaces its APIKey at runtime.
	openRouter ai.ProviderConfig

	// openAIKey is the configured image key, used when the application
	// context holds none.
	openAIKey string

	now func() time.Time
}

// New creates the API handler group. storageClient may be nil when S3 is not
// configured.
func New(assets *store.AssetStore, settings *store.SettingsStore, state *appstate.Context, gen *generator.Service, registry *ai.Registry, openRouter ai.ProviderConfig, storageClient *storage.Client) *API {
	return &API{
		assets:     assets,
		settings:   settings,
		state:      state,
		generator:  gen,
		registry:   registry,
		storage:    storageClient,
		openRouter: openRouter,
		now:        time.Now,
	}
}

// WithImageKey sets the fallback OpenAI key for image generation.
func (a *API) WithImageKey(key string) *API {
	a.openAIKey = key
	return a
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`

	// Provider and UpstreamStatus are set when an AI API refused the call.
	Provider       string `json:"provider,omitempty"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// decode reads a JSON body into v, rejecting bodies over maxBodyBytes.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// fail translates err into a status code and writes it. op names the
// failed operation in the log line for unexpected errors.
func fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var apiErr *ai.APIError
	switch {
	case errors.Is(err, models.ErrInvalidAsset), errors.Is(err, generator.ErrInvalidInput):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "asset not found")
	case errors.Is(err, store.ErrTypeChanged):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, generator.ErrSettingsMissing):
		writeError(w, r, http.StatusPreconditionFailed, err.Error())
	case errors.As(err, &apiErr):
		slog.Warn(op+" failed upstream", "provider", apiErr.Provider, "status", apiErr.StatusCode, "error", apiErr.Message)
		writeJSON(w, r, http.StatusBadGateway, errorResponse{
			Error:          apiErr.Message,
			Provider:       apiErr.Provider,
			UpstreamStatus: apiErr.StatusCode,
		})
	case errors.Is(err, generator.ErrMalformedResponse):
		slog.Warn(op+" returned a malformed response", "error", err)
		writeError(w, r, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.Canceled):
		slog.Info(op+" canceled by client")
	default:
		slog.Error(op+" failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
