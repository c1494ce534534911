package dashboard

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/enzo-prism/analytics/analytics"
	"github.com/enzo-prism/analytics/daterange"
	"github.com/enzo-prism/analytics/model"
)

// Policy-exclusion messages: these mark a property deliberately hidden from
// reporting, not a remote failure.
const (
	msgExcluded    = "excluded"
	msgNotIncluded = "not included"
)

// BuildPropertyDetail assembles the single-property view. After the
// allow/block validation it never fails outright: remote problems degrade
// to an error-carrying payload.
func (a *Assembler) BuildPropertyDetail(ctx context.Context, propertyID, windowKey string) *model.PropertyDetailResponse {
	window := daterange.NormalizeDetailWindow(windowKey)

	response := &model.PropertyDetailResponse{
		UpdatedAt: a.now().UTC(),
		Window:    window,
		Property: model.PropertyRef{
			PropertyID:  propertyID,
			DisplayName: propertyID,
		},
		Series: []model.SeriesPoint{},
	}

	// Policy checks come first: no remote call is made for a hidden id.
	if a.isBlocked(propertyID) {
		response.Error = strPtr(msgExcluded)
		return response
	}
	if !a.isAllowed(propertyID) {
		response.Error = strPtr(msgNotIncluded)
		return response
	}

	ranges := daterange.ComputeRanges(a.now(), window)

	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		log.Error().Err(err).Str("property", propertyID).Msg("Token acquisition failed")
		response.Error = strPtr(err.Error())
		return response
	}

	property, err := a.client.GetProperty(ctx, token, propertyID)
	if err != nil {
		log.Warn().Err(err).Str("property", propertyID).Msg("Property metadata lookup failed")
		response.Error = strPtr(err.Error())
		return response
	}
	response.Property.DisplayName = property.DisplayName

	stream, err := analytics.ResolveWebStream(ctx, a.client, token, propertyID)
	if err != nil {
		log.Warn().Err(err).Str("property", propertyID).Msg("Web stream lookup failed")
		response.Error = strPtr(err.Error())
		return response
	}
	if stream != nil {
		response.Property.DefaultURI = stream.DefaultURI
	}

	// Fetch both windows' daily series concurrently.
	var (
		wg                      sync.WaitGroup
		current, previous       []analytics.DailyCount
		currentErr, previousErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = analytics.FetchNewUsersSeries(ctx, a.client, token, propertyID, ranges.Current)
	}()
	go func() {
		defer wg.Done()
		previous, previousErr = analytics.FetchNewUsersSeries(ctx, a.client, token, propertyID, ranges.Previous)
	}()
	wg.Wait()

	if currentErr != nil || previousErr != nil {
		err := currentErr
		if err == nil {
			err = previousErr
		}
		log.Warn().Err(err).Str("property", propertyID).Msg("Daily series report failed")
		response.Error = strPtr(err.Error())
		return response
	}

	series := analytics.BuildSeries(ranges, current, previous)
	totalCurrent, totalPrevious := analytics.SeriesTotals(series)

	response.Series = series
	response.Summary = analytics.ComputeDelta(totalCurrent, totalPrevious)
	return response
}

func strPtr(s string) *string {
	return &s
}
