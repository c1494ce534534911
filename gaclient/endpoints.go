package gaclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/enzo-prism/analytics/model"
)

// AccountSummary is one entry of the Admin API accountSummaries listing.
type AccountSummary struct {
	Account           string            `json:"account"`
	DisplayName       string            `json:"displayName"`
	PropertySummaries []PropertySummary `json:"propertySummaries"`
}

// PropertySummary references a property by its resource name
// ("properties/<id>").
type PropertySummary struct {
	Property    string `json:"property"`
	DisplayName string `json:"displayName"`
}

type accountSummariesPage struct {
	AccountSummaries []AccountSummary `json:"accountSummaries"`
	NextPageToken    string           `json:"nextPageToken"`
}

// DataStream is one entry of the Admin API dataStreams listing.
type DataStream struct {
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	DisplayName   string         `json:"displayName"`
	WebStreamData *WebStreamData `json:"webStreamData"`
}

// WebStreamData carries the web-specific fields of a data stream.
type WebStreamData struct {
	DefaultURI    string `json:"defaultUri"`
	MeasurementID string `json:"measurementId"`
}

type dataStreamsPage struct {
	DataStreams   []DataStream `json:"dataStreams"`
	NextPageToken string       `json:"nextPageToken"`
}

// Property is the Admin API property metadata resource.
type Property struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// RunReportRequest is the Data API runReport request body.
type RunReportRequest struct {
	DateRanges []model.DateRange `json:"dateRanges"`
	Dimensions []Dimension       `json:"dimensions,omitempty"`
	Metrics    []Metric          `json:"metrics"`
	OrderBys   []OrderBy         `json:"orderBys,omitempty"`
}

type Dimension struct {
	Name string `json:"name"`
}

type Metric struct {
	Name string `json:"name"`
}

type OrderBy struct {
	Dimension *DimensionOrderBy `json:"dimension,omitempty"`
	Desc      bool              `json:"desc,omitempty"`
}

type DimensionOrderBy struct {
	DimensionName string `json:"dimensionName"`
}

// RunReportResponse is the Data API runReport response body.
type RunReportResponse struct {
	Rows []ReportRow `json:"rows"`
}

type ReportRow struct {
	DimensionValues []ReportValue `json:"dimensionValues"`
	MetricValues    []ReportValue `json:"metricValues"`
}

type ReportValue struct {
	Value string `json:"value"`
}

// ListAccountSummaries pages through every account summary visible to the
// token's service account.
func (c *Client) ListAccountSummaries(ctx context.Context, token string) ([]AccountSummary, error) {
	listURL := fmt.Sprintf("%s/accountSummaries?pageSize=200", c.adminBaseURL)
	return fetchAllPages(ctx, c, listURL, token, func(p accountSummariesPage) ([]AccountSummary, string) {
		return p.AccountSummaries, p.NextPageToken
	})
}

// ListDataStreams pages through the data streams of one property.
func (c *Client) ListDataStreams(ctx context.Context, token, propertyID string) ([]DataStream, error) {
	listURL := fmt.Sprintf("%s/properties/%s/dataStreams?pageSize=200", c.adminBaseURL, propertyID)
	return fetchAllPages(ctx, c, listURL, token, func(p dataStreamsPage) ([]DataStream, string) {
		return p.DataStreams, p.NextPageToken
	})
}

// GetProperty fetches the display metadata of one property.
func (c *Client) GetProperty(ctx context.Context, token, propertyID string) (*Property, error) {
	propertyURL := fmt.Sprintf("%s/properties/%s", c.adminBaseURL, propertyID)
	property, err := fetchJSON[Property](ctx, c, propertyURL, token, requestOptions{})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// RunReport executes one Data API report against a property.
func (c *Client) RunReport(ctx context.Context, token, propertyID string, report RunReportRequest) (*RunReportResponse, error) {
	reportURL := fmt.Sprintf("%s/properties/%s:runReport", c.dataBaseURL, propertyID)
	response, err := fetchJSON[RunReportResponse](ctx, c, reportURL, token, requestOptions{
		method: http.MethodPost,
		body:   report,
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
