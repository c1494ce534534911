package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/enzo-prism/analytics/config"
	"github.com/enzo-prism/analytics/gaclient"
)

func TestListProperties(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accountSummaries" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		// Two pages; the second holds an entry without an id and one
		// without a display name.
		if r.URL.Query().Get("pageToken") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"accountSummaries": []map[string]any{
					{
						"account": "accounts/100",
						"propertySummaries": []map[string]string{
							{"property": "properties/111", "displayName": "Site One"},
							{"property": "properties/222", "displayName": "Site Two"},
						},
					},
				},
				"nextPageToken": "next",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"accountSummaries": []map[string]any{
				{
					"account": "accounts/200",
					"propertySummaries": []map[string]string{
						{"property": "", "displayName": "No Id"},
						{"property": "properties/333"},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := gaclient.NewClient(config.GoogleConfig{AdminBaseURL: server.URL, DataBaseURL: server.URL})
	properties, err := ListProperties(context.Background(), client, "test-token")
	if err != nil {
		t.Fatalf("ListProperties() error = %v", err)
	}

	if len(properties) != 3 {
		t.Fatalf("got %d properties, want 3 (no-id entry skipped)", len(properties))
	}

	if properties[0].PropertyID != "111" || properties[0].DisplayName != "Site One" {
		t.Errorf("properties[0] = %+v", properties[0])
	}
	if properties[1].PropertyID != "222" {
		t.Errorf("properties[1] = %+v", properties[1])
	}

	// Display name falls back to the id when absent
	if properties[2].PropertyID != "333" || properties[2].DisplayName != "333" {
		t.Errorf("properties[2] = %+v, want id and displayName both 333", properties[2])
	}
}

func TestPropertyIDFromResourceName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Standard", "properties/123456", "123456"},
		{"BareID", "123456", "123456"},
		{"Empty", "", ""},
		{"TrailingSlash", "properties/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := propertyIDFromResourceName(tt.in); got != tt.want {
				t.Errorf("propertyIDFromResourceName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
