package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/enzo-prism/analytics/analytics"
	"github.com/enzo-prism/analytics/config"
	"github.com/enzo-prism/analytics/daterange"
	"github.com/enzo-prism/analytics/gaclient"
	"github.com/enzo-prism/analytics/model"
	"github.com/enzo-prism/analytics/utils"
)

// builtinExcludedProperty is the internal rollup property; it is never
// reported regardless of configuration.
const builtinExcludedProperty = "249571985"

const defaultConcurrency = 5

// TokenSource issues bearer tokens for the GA APIs.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Assembler builds the dashboard and property-detail payloads. Every call
// re-fetches from the remote APIs; nothing is cached between requests.
type Assembler struct {
	client      *gaclient.Client
	tokens      TokenSource
	allowed     []string
	blocked     []string
	concurrency int
	now         func() time.Time
}

// New creates an assembler from the dashboard configuration.
func New(client *gaclient.Client, tokens TokenSource, cfg config.DashboardConfig) *Assembler {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	blocked := append([]string{builtinExcludedProperty}, config.SplitIDList(cfg.BlockedProperties)...)

	return &Assembler{
		client:      client,
		tokens:      tokens,
		allowed:     config.SplitIDList(cfg.AllowedProperties),
		blocked:     blocked,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// isAllowed reports whether the allowlist admits the id. An empty allowlist
// admits everything.
func (a *Assembler) isAllowed(id string) bool {
	if len(a.allowed) == 0 {
		return true
	}
	for _, allowed := range a.allowed {
		if allowed == id {
			return true
		}
	}
	return false
}

func (a *Assembler) isBlocked(id string) bool {
	for _, blocked := range a.blocked {
		if blocked == id {
			return true
		}
	}
	return false
}

// filterProperties applies the allowlist, then the blocklist, so an id on
// both lists stays excluded.
func (a *Assembler) filterProperties(properties []model.PropertySummary) []model.PropertySummary {
	filtered := make([]model.PropertySummary, 0, len(properties))
	for _, p := range properties {
		if !a.isAllowed(p.PropertyID) || a.isBlocked(p.PropertyID) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

type streamOutcome struct {
	stream *model.WebStreamInfo
	err    error
}

// BuildDashboard assembles the all-properties view. Per-property failures
// become error rows; only token acquisition and catalog listing can fail
// the whole request.
func (a *Assembler) BuildDashboard(ctx context.Context, windowKey string) (*model.DashboardResponse, error) {
	window := daterange.NormalizeDashboardWindow(windowKey)
	ranges := daterange.ComputeRanges(a.now(), window)

	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring access token: %w", err)
	}

	catalog, err := analytics.ListProperties(ctx, a.client, token)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}

	properties := a.filterProperties(catalog)
	log.Debug().
		Int("visible", len(catalog)).
		Int("reported", len(properties)).
		Str("window", window).
		Msg("Property catalog resolved")

	// Stage one: resolve each property's web stream.
	streams := make([]streamOutcome, len(properties))
	forEachLimit(len(properties), a.concurrency, func(i int) {
		stream, err := analytics.ResolveWebStream(ctx, a.client, token, properties[i].PropertyID)
		streams[i] = streamOutcome{stream: stream, err: err}
	})

	var errorRows []model.DashboardProperty
	var candidates []int
	for i, outcome := range streams {
		switch {
		case outcome.err != nil:
			log.Warn().
				Err(outcome.err).
				Str("property", properties[i].PropertyID).
				Msg("Web stream lookup failed")
			errorRows = append(errorRows, errorRow(properties[i], nil, outcome.err))
		case outcome.stream == nil:
			// No web presence: dropped from the report entirely.
		default:
			candidates = append(candidates, i)
		}
	}

	// Stage two: fetch summary metrics for properties with a web stream.
	rows := make([]model.DashboardProperty, len(candidates))
	forEachLimit(len(candidates), a.concurrency, func(j int) {
		i := candidates[j]
		property := properties[i]
		stream := streams[i].stream

		delta, err := analytics.FetchNewUsersSummary(ctx, a.client, token, property.PropertyID, ranges)
		if err != nil {
			log.Warn().
				Err(err).
				Str("property", property.PropertyID).
				Msg("New-users report failed")
			rows[j] = errorRow(property, stream.DefaultURI, err)
			return
		}

		rows[j] = model.DashboardProperty{
			PropertyID:  property.PropertyID,
			DisplayName: property.DisplayName,
			DefaultURI:  stream.DefaultURI,
			NewUsers:    delta,
		}
	})

	merged := append(rows, errorRows...)
	sortByCurrentDesc(merged)

	return &model.DashboardResponse{
		UpdatedAt:  a.now().UTC(),
		Window:     window,
		Properties: dedupeByDomain(merged),
	}, nil
}

func errorRow(property model.PropertySummary, defaultURI *string, err error) model.DashboardProperty {
	message := err.Error()
	return model.DashboardProperty{
		PropertyID:  property.PropertyID,
		DisplayName: property.DisplayName,
		DefaultURI:  defaultURI,
		Error:       &message,
	}
}

// sortByCurrentDesc orders rows by current new users descending; rows
// without a metric sort as -1, landing last.
func sortByCurrentDesc(rows []model.DashboardProperty) {
	sort.SliceStable(rows, func(i, j int) bool {
		return sortKey(rows[i]) > sortKey(rows[j])
	})
}

func sortKey(row model.DashboardProperty) int64 {
	if row.NewUsers == nil {
		return -1
	}
	return row.NewUsers.Current
}

// dedupeByDomain drops rows whose normalized site domain was already seen;
// the first occurrence in sorted order wins. Rows without a domain are
// never deduplicated.
func dedupeByDomain(rows []model.DashboardProperty) []model.DashboardProperty {
	seen := make(map[string]bool, len(rows))
	deduped := make([]model.DashboardProperty, 0, len(rows))
	for _, row := range rows {
		if row.DefaultURI != nil {
			if domain := utils.NormalizeDomain(*row.DefaultURI); domain != "" {
				if seen[domain] {
					continue
				}
				seen[domain] = true
			}
		}
		deduped = append(deduped, row)
	}
	return deduped
}
