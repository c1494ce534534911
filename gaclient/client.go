package gaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/enzo-prism/analytics/config"
)

var (
	ErrEmptyResponse = errors.New("remote call returned an empty body")
)

// APIError is a non-2xx response from the GA Admin or Data API.
type APIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GA API request failed: %d %s: %s", e.Status, e.StatusText, e.Body)
}

// Client performs authenticated JSON calls against the GA4 Admin and Data
// REST APIs. It holds no per-request state and is safe for concurrent use.
type Client struct {
	adminBaseURL string
	dataBaseURL  string
	httpClient   *http.Client
}

// NewClient creates a client from the Google configuration. Base URLs are
// configurable so tests can point at a local server.
func NewClient(cfg config.GoogleConfig) *Client {
	return &Client{
		adminBaseURL: strings.TrimSuffix(cfg.AdminBaseURL, "/"),
		dataBaseURL:  strings.TrimSuffix(cfg.DataBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type requestOptions struct {
	method string
	body   any
}

// fetchJSON performs one authenticated request and decodes the JSON
// response into T. Non-2xx responses become an *APIError carrying the
// response body (read best-effort).
func fetchJSON[T any](ctx context.Context, c *Client, rawURL, token string, opts requestOptions) (T, error) {
	var out T

	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.body != nil {
		encoded, err := json.Marshal(opts.body)
		if err != nil {
			return out, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return out, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if opts.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &APIError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return out, ErrEmptyResponse
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decoding response: %w", err)
	}

	return out, nil
}

// fetchAllPages walks a paginated list endpoint, re-invoking it with
// pageToken until nextPageToken comes back empty, and accumulates all
// pages' items in listing order. extract pulls the items and the next page
// token out of one decoded page.
func fetchAllPages[P any, T any](ctx context.Context, c *Client, rawURL, token string, extract func(P) ([]T, string)) ([]T, error) {
	var all []T
	pageToken := ""

	for {
		pageURL, err := withPageToken(rawURL, pageToken)
		if err != nil {
			return nil, err
		}

		page, err := fetchJSON[P](ctx, c, pageURL, token, requestOptions{})
		if err != nil {
			return nil, err
		}

		items, next := extract(page)
		all = append(all, items...)

		if next == "" {
			return all, nil
		}
		pageToken = next
	}
}

func withPageToken(rawURL, pageToken string) (string, error) {
	if pageToken == "" {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}
	q := u.Query()
	q.Set("pageToken", pageToken)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
