package model

import "time"

// PropertySummary identifies one GA4 property visible to the service account.
type PropertySummary struct {
	PropertyID  string `json:"propertyId"`
	DisplayName string `json:"displayName"`
}

// WebStreamInfo describes the preferred web data stream of a property.
// A nil DefaultURI means the stream carries no site URL.
type WebStreamInfo struct {
	DefaultURI    *string `json:"defaultUri"`
	MeasurementID *string `json:"measurementId"`
}

// DateRange is an inclusive calendar-date range in UTC.
// Invariant: StartDate <= EndDate, both in "YYYY-MM-DD" form.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// NewUsersDelta compares the new-users count of the current window against
// the previous window. Pct is nil when Previous is zero.
type NewUsersDelta struct {
	Current  int64    `json:"current"`
	Previous int64    `json:"previous"`
	Delta    int64    `json:"delta"`
	Pct      *float64 `json:"pct"`
}

// SeriesPoint pairs day i of the current window with day i of the previous
// window (offset alignment, not calendar alignment).
type SeriesPoint struct {
	Date     string `json:"date"` // Date of the current window in "YYYY-MM-DD" format
	Current  int64  `json:"current"`
	Previous int64  `json:"previous"`
}

// DashboardProperty is one row of the aggregate dashboard view. NewUsers is
// nil exactly when the row represents a per-property failure, in which case
// Error carries the failure message.
type DashboardProperty struct {
	PropertyID  string         `json:"propertyId"`
	DisplayName string         `json:"displayName"`
	DefaultURI  *string        `json:"defaultUri"`
	NewUsers    *NewUsersDelta `json:"newUsers"`
	Error       *string        `json:"error"`
}

// DashboardResponse is the payload of the all-properties view. It is
// recomputed on every request and never persisted.
type DashboardResponse struct {
	UpdatedAt  time.Time           `json:"updatedAt"`
	Window     string              `json:"window"`
	Properties []DashboardProperty `json:"properties"`
}

// PropertyRef is the property metadata block of the detail view.
type PropertyRef struct {
	PropertyID  string  `json:"propertyId"`
	DisplayName string  `json:"displayName"`
	DefaultURI  *string `json:"defaultUri"`
}

// PropertyDetailResponse is the payload of the single-property view. On
// failure Summary is nil, Series is empty and Error carries the message.
type PropertyDetailResponse struct {
	UpdatedAt time.Time      `json:"updatedAt"`
	Window    string         `json:"window"`
	Property  PropertyRef    `json:"property"`
	Summary   *NewUsersDelta `json:"summary"`
	Series    []SeriesPoint  `json:"series"`
	Error     *string        `json:"error"`
}
