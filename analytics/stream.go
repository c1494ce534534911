package analytics

import (
	"context"

	"github.com/enzo-prism/analytics/gaclient"
	"github.com/enzo-prism/analytics/model"
)

const webDataStreamType = "WEB_DATA_STREAM"

// ResolveWebStream lists a property's data streams and picks its preferred
// web stream. A nil result with nil error means the property has no web
// presence.
func ResolveWebStream(ctx context.Context, client *gaclient.Client, token, propertyID string) (*model.WebStreamInfo, error) {
	streams, err := client.ListDataStreams(ctx, token, propertyID)
	if err != nil {
		return nil, err
	}
	return PickWebStream(streams), nil
}

// PickWebStream selects the preferred web stream: the first web stream with
// a non-empty site URL, else the first web stream in listing order, else
// nil when the property has no web streams at all.
func PickWebStream(streams []gaclient.DataStream) *model.WebStreamInfo {
	var web []gaclient.DataStream
	for _, s := range streams {
		if s.Type == webDataStreamType || s.WebStreamData != nil {
			web = append(web, s)
		}
	}
	if len(web) == 0 {
		return nil
	}

	chosen := web[0]
	for _, s := range web {
		if s.WebStreamData != nil && s.WebStreamData.DefaultURI != "" {
			chosen = s
			break
		}
	}

	info := &model.WebStreamInfo{}
	if chosen.WebStreamData != nil {
		if chosen.WebStreamData.DefaultURI != "" {
			uri := chosen.WebStreamData.DefaultURI
			info.DefaultURI = &uri
		}
		if chosen.WebStreamData.MeasurementID != "" {
			id := chosen.WebStreamData.MeasurementID
			info.MeasurementID = &id
		}
	}
	return info
}
