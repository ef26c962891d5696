// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"marketdash/internal/ai"
	"marketdash/internal/models"
)

// stateResponse is the public view of the application context. API keys are
// never echoed back, only whether they are set.
type stateResponse struct {
	HasAPIKey        bool             `json:"hasApiKey"`
	HasOpenAIAPIKey  bool             `json:"hasOpenAIApiKey"`
	SettingsComplete bool             `json:"isSettingsComplete"`
	Initialized      bool             `json:"isInitialized"`
	SidebarExpanded  bool             `json:"isSidebarExpanded"`
	Theme            models.ThemeMode `json:"theme"`
	Generating       bool             `json:"isGenerating"`
}

// statePatch lists the fields PATCH /api/state may change. Absent fields are
// left alone; an empty key string clears the key.
type statePatch struct {
	APIKey          *string           `json:"apiKey"`
	OpenAIAPIKey    *string           `json:"openaiApiKey"`
	Initialized     *bool             `json:"isInitialized"`
	SidebarExpanded *bool             `json:"isSidebarExpanded"`
	Theme           *models.ThemeMode `json:"theme"`
}

// GetState returns the application context.
func (a *API) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, a.stateView())
}

// PatchState applies a partial update to the application context in a
// single write. A new content key re-registers the OpenRouter provider.
func (a *API) PatchState(w http.ResponseWriter, r *http.Request) {
	var in statePatch
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if in.Theme != nil && !in.Theme.Valid() {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("unknown theme %q", *in.Theme))
		return
	}

	err := a.state.Update(r.Context(), func(st *models.AppState) {
		if in.APIKey != nil {
			st.APIKey = strings.TrimSpace(*in.APIKey)
		}
		if in.OpenAIAPIKey != nil {
			st.OpenAIAPIKey = strings.TrimSpace(*in.OpenAIAPIKey)
		}
		if in.Initialized != nil {
			st.Initialized = *in.Initialized
		}
		if in.SidebarExpanded != nil {
			st.SidebarExpanded = *in.SidebarExpanded
		}
		if in.Theme != nil {
			st.Theme = *in.Theme
		}
	})
	if err != nil {
		fail(w, r, "update app state", err)
		return
	}

	if in.APIKey != nil {
		a.SyncContentKey()
	}
	writeJSON(w, r, http.StatusOK, a.stateView())
}

// SyncContentKey registers the OpenRouter provider with the key held by the
// application context, falling back to the configured key. Without either
// the provider is removed.
func (a *API) SyncContentKey() {
	cfg := a.openRouter
	if key := a.state.APIKey(); key != "" {
		cfg.APIKey = key
	}
	if cfg.APIKey == "" {
		a.registry.Unregister(ai.ProviderOpenRouter)
		slog.Info("openrouter provider removed, no api key")
		return
	}

	p, err := ai.NewProvider(ai.ProviderOpenRouter, cfg)
	if err != nil {
		slog.Error("failed to build openrouter provider", "error", err)
		return
	}
	a.registry.Register(ai.ProviderOpenRouter, p)
	slog.Info("openrouter provider registered")
}

func (a *API) stateView() stateResponse {
	st := a.state.Snapshot()
	return stateResponse{
		HasAPIKey:        st.APIKey != "",
		HasOpenAIAPIKey:  st.OpenAIAPIKey != "" || a.openAIKey != "",
		SettingsComplete: st.SettingsComplete,
		Initialized:      st.Initialized,
		SidebarExpanded:  st.SidebarExpanded,
		Theme:            st.Theme,
		Generating:       a.state.Generating(),
	}
}

// providerInfo describes one content provider for the provider picker.
type providerInfo struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
	Active    bool   `json:"active"`
}

type providersResponse struct {
	Active    string         `json:"active"`
	Providers []providerInfo `json:"providers"`
}

var providerLabels = []struct{ name, label string }{
	{ai.ProviderOpenRouter, "OpenRouter"},
	{ai.ProviderOpenAI, "OpenAI"},
	{ai.ProviderClaude, "Claude"},
	{ai.ProviderGemini, "Gemini"},
	{ai.ProviderMistral, "Mistral"},
}

// ListProviders returns every known content provider, whether it has a key
// and which one is active.
func (a *API) ListProviders(w http.ResponseWriter, r *http.Request) {
	active := a.registry.ActiveName()
	resp := providersResponse{Active: active}
	for _, p := range providerLabels {
		resp.Providers = append(resp.Providers, providerInfo{
			Name:      p.name,
			Label:     p.label,
			Available: a.registry.HasProvider(p.name),
			Active:    p.name == active,
		})
	}
	writeJSON(w, r, http.StatusOK, resp)
}

type activeProviderRequest struct {
	Provider string `json:"provider"`
}

// SetActiveProvider switches the content provider used by generation.
func (a *API) SetActiveProvider(w http.ResponseWriter, r *http.Request) {
	var in activeProviderRequest
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(in.Provider)
	if name == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "No provider specified.")
		return
	}

	if err := a.registry.SetActive(name); err != nil {
		slog.Warn("failed to switch AI provider", "provider", name, "error", err)
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("Cannot switch to %q: provider not available (no API key configured).", name))
		return
	}

	slog.Info("ai provider switched", "provider", name)
	a.ListProviders(w, r)
}
