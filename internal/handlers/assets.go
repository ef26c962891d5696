// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"marketdash/internal/export"
	"marketdash/internal/models"
	"marketdash/internal/store"
)

// ListAssets returns the asset library, newest first. The optional type and
// status query parameters narrow the list; a non-blank q runs a full-text
// search first and applies the same filters to its result.
func (a *API) ListAssets(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var assets []models.Asset
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		found, err := a.assets.Search(r.Context(), q)
		if err != nil {
			fail(w, r, "search assets", err)
			return
		}
		assets = applyFilter(found, filter)
	} else {
		assets, err = a.assets.List(r.Context(), filter)
		if err != nil {
			fail(w, r, "list assets", err)
			return
		}
	}

	if assets == nil {
		assets = []models.Asset{}
	}
	writeJSON(w, r, http.StatusOK, assets)
}

// CreateAsset saves a generated draft. Missing id, status and timestamps are
// filled in and timestamps are kept in UTC, as the store returns them. An
// asset posted twice is stored once.
func (a *API) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var in models.Asset
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	now := a.now().UTC()
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Status == "" {
		in.Status = models.AssetStatusDraft
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	if in.UpdatedAt.IsZero() {
		in.UpdatedAt = in.CreatedAt
	}
	in.CreatedAt = in.CreatedAt.UTC()
	in.UpdatedAt = in.UpdatedAt.UTC()

	if err := a.assets.Save(r.Context(), &in); err != nil {
		fail(w, r, "save asset", err)
		return
	}
	slog.Info("asset saved", "id", in.ID, "type", in.Type())
	writeJSON(w, r, http.StatusCreated, in)
}

// GetAsset returns a single asset.
func (a *API) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, ok := a.findAsset(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, asset)
}

// UpdateAsset replaces an asset's status and payload. The stored createdAt
// is kept and updatedAt is stamped with the current time.
func (a *API) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	existing, ok := a.findAsset(w, r)
	if !ok {
		return
	}

	var in models.Asset
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if in.ID != "" && in.ID != existing.ID {
		writeError(w, r, http.StatusBadRequest, "asset id does not match the URL")
		return
	}
	if in.Type() != existing.Type() {
		writeError(w, r, http.StatusConflict, store.ErrTypeChanged.Error())
		return
	}

	in.ID = existing.ID
	if in.Status == "" {
		in.Status = existing.Status
	}
	in.CreatedAt = existing.CreatedAt
	in.UpdatedAt = a.now().UTC()
	if in.UpdatedAt.Before(existing.UpdatedAt) {
		in.UpdatedAt = existing.UpdatedAt
	}

	if err := a.assets.Save(r.Context(), &in); err != nil {
		fail(w, r, "update asset", err)
		return
	}
	writeJSON(w, r, http.StatusOK, in)
}

// DeleteAsset removes an asset. Deleting a missing asset succeeds. The
// mirrored file of an image asset is removed from object storage on a best
// effort basis.
func (a *API) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	existing, err := a.assets.FindByID(ctx, id)
	if err != nil {
		fail(w, r, "load asset", err)
		return
	}
	if err := a.assets.Delete(ctx, id); err != nil {
		fail(w, r, "delete asset", err)
		return
	}

	if existing != nil && a.storage != nil {
		if img, ok := existing.Data.(*models.ImageAsset); ok {
			if key, ok := a.storage.ExtractKey(img.ImageURL); ok {
				if err := a.storage.Delete(ctx, key); err != nil {
					slog.Warn("failed to delete mirrored image", "id", id, "key", key, "error", err)
				}
			}
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status models.AssetStatus `json:"status"`
}

// UpdateAssetStatus moves an asset through the draft/review/published
// workflow and returns the updated asset.
func (a *API) UpdateAssetStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	ctx := r.Context()
	if err := a.assets.UpdateStatus(ctx, id, in.Status); err != nil {
		fail(w, r, "update asset status", err)
		return
	}

	asset, err := a.assets.FindByID(ctx, id)
	if err != nil {
		fail(w, r, "reload asset", err)
		return
	}
	if asset == nil {
		writeError(w, r, http.StatusNotFound, "asset not found")
		return
	}
	writeJSON(w, r, http.StatusOK, asset)
}

// ExportAsset downloads the asset as a standalone HTML document. The
// X-Save-Path header carries the suggested path inside an export folder.
func (a *API) ExportAsset(w http.ResponseWriter, r *http.Request) {
	asset, ok := a.findAsset(w, r)
	if !ok {
		return
	}

	doc, err := export.RenderBytes(asset)
	if err != nil {
		fail(w, r, "export asset", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(asset)))
	w.Header().Set("X-Save-Path", export.SavePath(asset))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// Stats returns asset counts by type and status.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.assets.Stats(r.Context())
	if err != nil {
		fail(w, r, "asset stats", err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

// findAsset loads the asset named by the {id} URL parameter and writes a
// 404 when it does not exist.
func (a *API) findAsset(w http.ResponseWriter, r *http.Request) (*models.Asset, bool) {
	asset, err := a.assets.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, "load asset", err)
		return nil, false
	}
	if asset == nil {
		writeError(w, r, http.StatusNotFound, "asset not found")
		return nil, false
	}
	return asset, true
}

func parseFilter(r *http.Request) (store.AssetFilter, error) {
	var f store.AssetFilter
	q := r.URL.Query()
	if v := q.Get("type"); v != "" {
		t := models.AssetType(v)
		if !t.Valid() {
			return f, fmt.Errorf("unknown asset type %q", v)
		}
		f.Type = &t
	}
	if v := q.Get("status"); v != "" {
		s := models.AssetStatus(v)
		if !s.Valid() {
			return f, fmt.Errorf("unknown asset status %q", v)
		}
		f.Status = &s
	}
	return f, nil
}

// applyFilter narrows search results the same way AssetStore.List does.
func applyFilter(assets []models.Asset, f store.AssetFilter) []models.Asset {
	out := make([]models.Asset, 0, len(assets))
	for _, asset := range assets {
		if f.Type != nil && asset.Type() != *f.Type {
			continue
		}
		if f.Status != nil && asset.Status != *f.Status {
			continue
		}
		out = append(out, asset)
	}
	return out
}
