package handlers

import (
	"context"
	"net/http"
	"testing"

	"marketdash/internal/models"
)

func TestGetSettingsBeforeSave(t *testing.T) {
	env := newTestEnv(t)
	rec := call(env.API.GetSettings, http.MethodGet, "/api/settings", "", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestPutSettings(t *testing.T) {
	env := newTestEnv(t)

	body := `{"businessName":"  Acme  ","name":"Jo","tone":"friendly","icp":"small bakeries",
		"brandGuidelines":{"dos":["be concise"," "],"donts":["use jargon"]},
		"keywords":["sourdough","","ovens"]}`
	rec := call(env.API.PutSettings, http.MethodPut, "/api/settings", "", body)
	expectStatus(t, rec, http.StatusOK)

	got := decodeJSON[models.BusinessSettings](t, rec)
	if got.BusinessName != "Acme" {
		t.Errorf("businessName: got %q, want Acme", got.BusinessName)
	}
	if len(got.Keywords) != 2 || got.Keywords[1] != "ovens" {
		t.Errorf("keywords: got %v", got.Keywords)
	}
	if len(got.BrandGuidelines.Dos) != 1 {
		t.Errorf("dos: got %v", got.BrandGuidelines.Dos)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
	if !env.State.Snapshot().SettingsComplete {
		t.Error("expected settings-complete flag to be set")
	}

	rec = call(env.API.GetSettings, http.MethodGet, "/api/settings", "", "")
	expectStatus(t, rec, http.StatusOK)
	if again := decodeJSON[models.BusinessSettings](t, rec); again.BusinessName != "Acme" {
		t.Errorf("GET after PUT: got %q", again.BusinessName)
	}
}

func TestPutSettingsReplacesSingleRow(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"Acme", "Acme2"} {
		rec := call(env.API.PutSettings, http.MethodPut, "/api/settings", "", `{"businessName":"`+name+`","tone":"calm","icp":"cafes"}`)
		expectStatus(t, rec, http.StatusOK)
	}

	var count int
	if err := env.DB.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM business_settings").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows: got %d, want 1", count)
	}
	bs, err := env.Settings.Get(context.Background())
	if err != nil || bs == nil {
		t.Fatalf("Get: %v, %v", bs, err)
	}
	if bs.BusinessName != "Acme2" {
		t.Errorf("businessName: got %q, want Acme2", bs.BusinessName)
	}
}

func TestPutSettingsIncompleteClearsFlag(t *testing.T) {
	env := newTestEnv(t)

	rec := call(env.API.PutSettings, http.MethodPut, "/api/settings", "", `{"businessName":"Acme"}`)
	expectStatus(t, rec, http.StatusOK)
	if env.State.Snapshot().SettingsComplete {
		t.Error("settings without tone and icp marked complete")
	}
}

func TestPutSettingsValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := call(env.API.PutSettings, http.MethodPut, "/api/settings", "", `{"businessName":"   "}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)

	rec = call(env.API.PutSettings, http.MethodPut, "/api/settings", "", `not json`)
	expectStatus(t, rec, http.StatusBadRequest)
}
