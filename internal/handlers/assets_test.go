package handlers

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"marketdash/internal/models"
	"marketdash/internal/store"
)

var baseTime = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func guide() *models.SEOArticle {
	return &models.SEOArticle{
		Title:     "Sourdough Guide",
		Tags:      []string{"bread"},
		Content:   "<p>Feed the starter.</p>",
		WordCount: 3,
	}
}

func TestCreateAndGetAsset(t *testing.T) {
	env := newTestEnv(t)

	body := `{"type":"seo","data":{"title":"Spring Menu","tags":["menu"],"content":"<p>New dishes</p>","wordCount":2,"imagePrompt":"a table"}}`
	rec := call(env.API.CreateAsset, http.MethodPost, "/api/assets", "", body)
	expectStatus(t, rec, http.StatusCreated)

	created := decodeJSON[models.Asset](t, rec)
	if created.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if created.Status != models.AssetStatusDraft {
		t.Errorf("status: got %q, want draft", created.Status)
	}
	if !created.CreatedAt.Equal(testNow) || !created.UpdatedAt.Equal(testNow) {
		t.Errorf("timestamps: created %v updated %v", created.CreatedAt, created.UpdatedAt)
	}

	rec = call(env.API.GetAsset, http.MethodGet, "/api/assets/"+created.ID, created.ID, "")
	expectStatus(t, rec, http.StatusOK)
	got := decodeJSON[models.Asset](t, rec)
	seo, ok := got.Data.(*models.SEOArticle)
	if !ok {
		t.Fatalf("data type %T", got.Data)
	}
	if seo.Title != "Spring Menu" || seo.WordCount != 2 {
		t.Errorf("stored article: %+v", seo)
	}
}

func TestCreateAssetStoresUTC(t *testing.T) {
	env := newTestEnv(t)

	body := `{"id":"berlin-1","type":"seo","status":"review","createdAt":"2026-10-01T11:00:00+02:00","updatedAt":"2026-10-01T11:30:00+02:00",` +
		`"data":{"title":"Spring Menu","tags":["menu"],"content":"<p>New dishes</p>","wordCount":2,"imagePrompt":""}}`
	rec := call(env.API.CreateAsset, http.MethodPost, "/api/assets", "", body)
	expectStatus(t, rec, http.StatusCreated)
	created := decodeJSON[models.Asset](t, rec)

	want := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	if !created.CreatedAt.Equal(want) || created.CreatedAt.Location() != time.UTC {
		t.Errorf("createdAt: got %v, want %v", created.CreatedAt, want)
	}

	rec = call(env.API.GetAsset, http.MethodGet, "/api/assets/berlin-1", "berlin-1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decodeJSON[models.Asset](t, rec); !reflect.DeepEqual(got, created) {
		t.Errorf("stored asset differs from the create response:\n got %+v\nwant %+v", got, created)
	}
}

func TestCreateAssetIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	draft := models.NewAsset(guide(), baseTime)
	raw, err := models.EncodeAsset(*draft)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	for i := 0; i < 2; i++ {
		rec := call(env.API.CreateAsset, http.MethodPost, "/api/assets", "", string(raw))
		expectStatus(t, rec, http.StatusCreated)
	}

	all, err := env.Assets.List(context.Background(), store.AssetFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 || all[0].ID != draft.ID {
		t.Errorf("got %d assets, want the single draft %s", len(all), draft.ID)
	}
}

func TestCreateAssetRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type":"podcast","data":{}}`},
		{"foreign field", `{"type":"seo","data":{"title":"x","subject":"y"}}`},
		{"unknown purpose", `{"type":"email","data":{"subject":"Hi","purpose":"spam"}}`},
		{"negative cost", `{"type":"image","data":{"title":"x","cost":-1}}`},
		{"unknown status", `{"type":"seo","status":"archived","data":{"title":"x"}}`},
		{"missing data", `{"type":"seo"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(env.API.CreateAsset, http.MethodPost, "/api/assets", "", tt.body)
			expectStatus(t, rec, http.StatusUnprocessableEntity)
		})
	}
}

func TestGetAssetNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := call(env.API.GetAsset, http.MethodGet, "/api/assets/missing", "missing", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestListAssets(t *testing.T) {
	env := newTestEnv(t)
	g := saveAsset(t, env, guide(), baseTime)
	e := saveAsset(t, env, &models.EmailCampaign{Subject: "Hello", BodyHTML: "<p>Hi</p>", Purpose: models.EmailPurposeNewsletter}, baseTime.Add(time.Hour))
	s := saveAsset(t, env, &models.SocialPost{Copy: "Fresh loaves today", Platform: models.PlatformInstagram}, baseTime.Add(2*time.Hour))
	if err := env.Assets.UpdateStatus(context.Background(), s.ID, models.AssetStatusPublished); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all newest first", "", []string{s.ID, e.ID, g.ID}},
		{"by type", "?type=email", []string{e.ID}},
		{"by status", "?status=published", []string{s.ID}},
		{"type and status", "?type=social&status=draft", nil},
		{"search is case-insensitive", "?q=GUIDE", []string{g.ID}},
		{"search matches type names", "?q=newsletter", []string{e.ID}},
		{"search then filter", "?q=o&type=social", []string{s.ID}},
		{"blank search lists", "?q=%20%20", []string{s.ID, e.ID, g.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(env.API.ListAssets, http.MethodGet, "/api/assets"+tt.query, "", "")
			expectStatus(t, rec, http.StatusOK)
			got := decodeJSON[[]models.Asset](t, rec)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d assets, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("asset %d: got %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestListAssetsEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	rec := call(env.API.ListAssets, http.MethodGet, "/api/assets", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body: got %s, want []", got)
	}
}

func TestListAssetsRejectsUnknownFilter(t *testing.T) {
	env := newTestEnv(t)
	for _, q := range []string{"?type=podcast", "?status=archived"} {
		rec := call(env.API.ListAssets, http.MethodGet, "/api/assets"+q, "", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", q, rec.Code)
		}
	}
}

func TestUpdateAsset(t *testing.T) {
	env := newTestEnv(t)
	a := saveAsset(t, env, guide(), baseTime)

	body := `{"type":"seo","status":"review","createdAt":"2020-01-01T00:00:00Z","data":{"title":"Sourdough Guide v2","tags":[],"content":"<p>Edited</p>","wordCount":1,"imagePrompt":""}}`
	rec := call(env.API.UpdateAsset, http.MethodPut, "/api/assets/"+a.ID, a.ID, body)
	expectStatus(t, rec, http.StatusOK)

	got, err := env.Assets.FindByID(context.Background(), a.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v, %v", got, err)
	}
	if !got.CreatedAt.Equal(baseTime) {
		t.Errorf("createdAt: got %v, want %v", got.CreatedAt, baseTime)
	}
	if !got.UpdatedAt.Equal(testNow) {
		t.Errorf("updatedAt: got %v, want %v", got.UpdatedAt, testNow)
	}
	if got.Status != models.AssetStatusReview {
		t.Errorf("status: got %q, want review", got.Status)
	}
	if title := got.Data.(*models.SEOArticle).Title; title != "Sourdough Guide v2" {
		t.Errorf("title: got %q", title)
	}
}

func TestUpdateAssetKeepsStatusWhenOmitted(t *testing.T) {
	env := newTestEnv(t)
	a := saveAsset(t, env, guide(), baseTime)
	if err := env.Assets.UpdateStatus(context.Background(), a.ID, models.AssetStatusPublished); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	rec := call(env.API.UpdateAsset, http.MethodPut, "/api/assets/"+a.ID, a.ID, `{"type":"seo","data":{"title":"Renamed"}}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeJSON[models.Asset](t, rec); got.Status != models.AssetStatusPublished {
		t.Errorf("status: got %q, want published", got.Status)
	}
}

func TestUpdateAssetErrors(t *testing.T) {
	env := newTestEnv(t)
	a := saveAsset(t, env, guide(), baseTime)

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"missing asset", "missing", `{"type":"seo","data":{"title":"x"}}`, http.StatusNotFound},
		{"type change", a.ID, `{"type":"email","data":{"subject":"x","purpose":"newsletter"}}`, http.StatusConflict},
		{"id mismatch", a.ID, `{"id":"other","type":"seo","data":{"title":"x"}}`, http.StatusBadRequest},
		{"invalid payload", a.ID, `{"type":"seo","data":{"title":"x","wordCount":-4}}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(env.API.UpdateAsset, http.MethodPut, "/api/assets/"+tt.id, tt.id, tt.body)
			expectStatus(t, rec, tt.want)
		})
	}
}

func TestUpdateAssetStatus(t *testing.T) {
	env := newTestEnv(t)
	a := saveAsset(t, env, guide(), baseTime)

	rec := call(env.API.UpdateAssetStatus, http.MethodPatch, "/api/assets/"+a.ID+"/status", a.ID, `{"status":"published"}`)
	expectStatus(t, rec, http.StatusOK)
	got := decodeJSON[models.Asset](t, rec)
	if got.Status != models.AssetStatusPublished {
		t.Errorf("status: got %q, want published", got.Status)
	}
	if !got.CreatedAt.Equal(baseTime) {
		t.Errorf("createdAt changed: %v", got.CreatedAt)
	}
	if got.UpdatedAt.Before(a.UpdatedAt) {
		t.Errorf("updatedAt went backwards: %v < %v", got.UpdatedAt, a.UpdatedAt)
	}

	rec = call(env.API.UpdateAssetStatus, http.MethodPatch, "/api/assets/"+a.ID+"/status", a.ID, `{"status":"archived"}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)

	rec = call(env.API.UpdateAssetStatus, http.MethodPatch, "/api/assets/missing/status", "missing", `{"status":"review"}`)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestDeleteAsset(t *testing.T) {
	env := newTestEnv(t)
	a := saveAsset(t, env, guide(), baseTime)

	for i := 0; i < 2; i++ {
		rec := call(env.API.DeleteAsset, http.MethodDelete, "/api/assets/"+a.ID, a.ID, "")
		expectStatus(t, rec, http.StatusNoContent)
	}

	rec := call(env.API.GetAsset, http.MethodGet, "/api/assets/"+a.ID, a.ID, "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestExportAsset(t *testing.T) {
	env := newTestEnv(t)
	a := saveAsset(t, env, guide(), baseTime)

	rec := call(env.API.ExportAsset, http.MethodGet, "/api/assets/"+a.ID+"/export", a.ID, "")
	expectStatus(t, rec, http.StatusOK)

	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="2026-10-01-sourdough-guide.html"` {
		t.Errorf("Content-Disposition: got %q", cd)
	}
	if p := rec.Header().Get("X-Save-Path"); p != "articles/2026-10-01-sourdough-guide.html" {
		t.Errorf("X-Save-Path: got %q", p)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Sourdough Guide") || !strings.Contains(body, "<p>Feed the starter.</p>") {
		t.Errorf("export body missing article: %s", body)
	}

	rec = call(env.API.ExportAsset, http.MethodGet, "/api/assets/missing/export", "missing", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	saveAsset(t, env, guide(), baseTime)
	saveAsset(t, env, &models.SEOArticle{Title: "Second"}, baseTime.Add(time.Minute))
	saveAsset(t, env, &models.LeadMagnet{Title: "Checklist", ResourceType: models.LeadMagnetChecklist}, baseTime.Add(2*time.Minute))

	rec := call(env.API.Stats, http.MethodGet, "/api/stats", "", "")
	expectStatus(t, rec, http.StatusOK)

	got := decodeJSON[struct {
		Total    int            `json:"total"`
		ByType   map[string]int `json:"byType"`
		ByStatus map[string]int `json:"byStatus"`
	}](t, rec)
	if got.Total != 3 {
		t.Errorf("total: got %d, want 3", got.Total)
	}
	if got.ByType["seo"] != 2 || got.ByType["leadMagnet"] != 1 {
		t.Errorf("byType: got %v", got.ByType)
	}
	if got.ByStatus["draft"] != 3 {
		t.Errorf("byStatus: got %v", got.ByStatus)
	}
}
