// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"marketdash/internal/models"
)

// GetSettings returns the business settings, or 404 before the first save.
func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	bs, err := a.settings.Get(r.Context())
	if err != nil {
		fail(w, r, "load settings", err)
		return
	}
	if bs == nil {
		writeError(w, r, http.StatusNotFound, "business settings not found")
		return
	}
	writeJSON(w, r, http.StatusOK, bs)
}

// PutSettings creates or replaces the business settings and refreshes the
// settings-complete flag of the application context.
func (a *API) PutSettings(w http.ResponseWriter, r *http.Request) {
	var in models.BusinessSettings
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Keywords = compact(in.Keywords)
	in.BrandGuidelines.Dos = compact(in.BrandGuidelines.Dos)
	in.BrandGuidelines.Donts = compact(in.BrandGuidelines.Donts)

	if msg := validateSettings(&in); msg != "" {
		writeError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}

	ctx := r.Context()
	if err := a.settings.Save(ctx, &in); err != nil {
		fail(w, r, "save settings", err)
		return
	}
	if err := a.state.SetSettingsComplete(ctx, in.IsComplete()); err != nil {
		slog.Error("failed to update settings flag", "error", err)
	}

	saved, err := a.settings.Get(ctx)
	if err != nil {
		fail(w, r, "reload settings", err)
		return
	}
	slog.Info("business settings saved", "business", saved.BusinessName)
	writeJSON(w, r, http.StatusOK, saved)
}

// compact trims list entries and drops empty ones, keeping the order.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
