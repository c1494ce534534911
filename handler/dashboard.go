package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/enzo-prism/analytics/auth"
	"github.com/enzo-prism/analytics/dashboard"
)

// DashboardHandler serves the dashboard and property-detail views.
type DashboardHandler struct {
	assembler   *dashboard.Assembler
	credentials *auth.Provider
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(assembler *dashboard.Assembler, credentials *auth.Provider) *DashboardHandler {
	return &DashboardHandler{
		assembler:   assembler,
		credentials: credentials,
	}
}

// GetDashboard handles GET /api/dashboard
// @Summary All-properties dashboard
// @Description Current-vs-previous new-users comparison for every reportable GA4 property. Data is fetched live; per-property failures appear as error rows.
// @Tags Dashboard
// @Produce json
// @Param window query string false "Window key (d7, d28, d90)" default(d7)
// @Success 200 {object} model.DashboardResponse "Dashboard payload"
// @Failure 502 {object} ErrorResponse "Token or catalog fetch failed"
// @Router /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")

	response, err := h.assembler.BuildDashboard(r.Context(), window)
	if err != nil {
		log.Error().Err(err).Str("window", window).Msg("Dashboard assembly failed")
		status := http.StatusBadGateway
		if errors.Is(err, auth.ErrMissingCredentials) {
			status = http.StatusServiceUnavailable
		}
		SendJSONError(w, status, err, "Failed to load analytics data")
		return
	}

	SendJSONSuccess(w, http.StatusOK, response)
}

// GetPropertyDetail handles GET /api/properties/{propertyID}
// @Summary Single-property detail
// @Description New-users summary and zero-filled daily trend for one property. Failures after validation degrade to an error-carrying payload with HTTP 200.
// @Tags Dashboard
// @Produce json
// @Param propertyID path string true "GA4 property id" example("254899076")
// @Param window query string false "Window key (d1, d7, d28, d90, d180, d365)" default(d7)
// @Success 200 {object} model.PropertyDetailResponse "Property detail payload"
// @Router /api/properties/{propertyID} [get]
func (h *DashboardHandler) GetPropertyDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID := vars["propertyID"]
	window := r.URL.Query().Get("window")

	response := h.assembler.BuildPropertyDetail(r.Context(), propertyID, window)
	SendJSONSuccess(w, http.StatusOK, response)
}

// HealthCheck handles GET /health
// @Summary Health check
// @Description Returns service status and whether GA credentials are configured. Makes no remote call.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Router /health [get]
func (h *DashboardHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	credentials := "configured"
	if !h.credentials.Configured() {
		credentials = "missing"
	}

	SendJSONSuccess(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"credentials": credentials,
	})
}
