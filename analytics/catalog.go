package analytics

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/enzo-prism/analytics/gaclient"
	"github.com/enzo-prism/analytics/model"
)

// ListProperties flattens the account-summaries listing into the catalog of
// properties visible to the service account. Entries whose resource name
// yields no property id are skipped; a missing display name falls back to
// the id.
func ListProperties(ctx context.Context, client *gaclient.Client, token string) ([]model.PropertySummary, error) {
	summaries, err := client.ListAccountSummaries(ctx, token)
	if err != nil {
		return nil, err
	}

	var properties []model.PropertySummary
	for _, account := range summaries {
		for _, property := range account.PropertySummaries {
			id := propertyIDFromResourceName(property.Property)
			if id == "" {
				log.Warn().
					Str("resource", property.Property).
					Msg("Skipping property summary without an extractable id")
				continue
			}

			displayName := property.DisplayName
			if displayName == "" {
				displayName = id
			}

			properties = append(properties, model.PropertySummary{
				PropertyID:  id,
				DisplayName: displayName,
			})
		}
	}

	return properties, nil
}

// propertyIDFromResourceName extracts the trailing path segment of a
// resource name like "properties/123456".
func propertyIDFromResourceName(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(name, "/")
	return parts[len(parts)-1]
}
