package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/enzo-prism/analytics/auth"
	"github.com/enzo-prism/analytics/config"
	"github.com/enzo-prism/analytics/dashboard"
	"github.com/enzo-prism/analytics/gaclient"
	"github.com/enzo-prism/analytics/model"
)

// newUnconfiguredHandler builds a handler whose credential provider has no
// secrets, so any remote work fails before a request leaves the process.
func newUnconfiguredHandler(dashboardCfg config.DashboardConfig) *DashboardHandler {
	googleCfg := config.GoogleConfig{
		AdminBaseURL: "http://127.0.0.1:0",
		DataBaseURL:  "http://127.0.0.1:0",
	}
	credentials := auth.NewProvider(googleCfg)
	client := gaclient.NewClient(googleCfg)
	assembler := dashboard.New(client, credentials, dashboardCfg)
	return NewDashboardHandler(assembler, credentials)
}

func TestGetDashboard_MissingCredentials(t *testing.T) {
	handler := newUnconfiguredHandler(config.DashboardConfig{})

	req := httptest.NewRequest("GET", "/api/dashboard?window=d7", nil)
	w := httptest.NewRecorder()

	handler.GetDashboard(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}

	var body ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Error == "" {
		t.Error("expected a non-empty error field")
	}
}

func TestGetPropertyDetail_BlocklistedIsStillHTTP200(t *testing.T) {
	handler := newUnconfiguredHandler(config.DashboardConfig{
		BlockedProperties: "99",
	})

	req := httptest.NewRequest("GET", "/api/properties/99?window=d7", nil)
	req = mux.SetURLVars(req, map[string]string{"propertyID": "99"})
	w := httptest.NewRecorder()

	handler.GetPropertyDetail(w, req)

	// Policy exclusion is data, not a transport fault
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body model.PropertyDetailResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error == nil || *body.Error != "excluded" {
		t.Errorf("error = %v, want excluded", body.Error)
	}
	if body.Summary != nil {
		t.Errorf("summary = %+v, want null", body.Summary)
	}
	if body.Series == nil || len(body.Series) != 0 {
		t.Errorf("series = %v, want empty array", body.Series)
	}
}

func TestHealthCheck(t *testing.T) {
	handler := newUnconfiguredHandler(config.DashboardConfig{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	handler.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
	if body["credentials"] != "missing" {
		t.Errorf("credentials = %q, want missing", body["credentials"])
	}
}
