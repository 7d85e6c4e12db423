package viz

import (
	"context"
	"encoding/json"
	"fmt"

	"panchanga-desktop/internal/cache"
	"panchanga-desktop/internal/common"
	"panchanga-desktop/internal/panchanga"
)

// DefaultSolarTitle is shown over the solar system panel when the event has
// no title
const DefaultSolarTitle = "Solar System View"

// NewSkyshotLoader builds the sky-map panel loader. The title is the
// nakshatra the service reports; the caption combines the moon's sidereal
// longitude with the phase angle when both are present.
func NewSkyshotLoader(client *panchanga.Client, images *cache.ImageCache, emit func(Update)) *Loader {
	fetch := func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error) {
		key := cache.RequestKey(common.PanelSkyshot, req.Date, req.Time, req.Location)

		resp, err := cachedSkyshot(ctx, client, images, key, req)
		if err != nil {
			return nil, err
		}

		caption := ""
		if resp.MoonLongitude != nil && resp.PhaseAngle != nil {
			caption = fmt.Sprintf("Moon at %.1f°, %.1f° separation",
				*resp.MoonLongitude, *resp.PhaseAngle)
		}

		return &Render{
			Title:     resp.Nakshatra,
			Caption:   caption,
			ImageData: resp.ImageData,
		}, nil
	}

	return NewLoader(common.PanelSkyshot, fetch, emit)
}

// NewSolarSystemLoader builds the heliocentric panel loader. The event title
// heads the panel, with a fixed fallback when empty.
func NewSolarSystemLoader(client *panchanga.Client, images *cache.ImageCache, emit func(Update)) *Loader {
	fetch := func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error) {
		// The heliocentric view depends only on the moment, not the observer,
		// so the location stays out of the key
		key := cache.RequestKey(common.PanelSolarSystem, req.Date, req.Time, "")

		resp, err := cachedSolarSystem(ctx, client, images, key, req)
		if err != nil {
			return nil, err
		}

		title := req.Title
		if title == "" {
			title = DefaultSolarTitle
		}

		return &Render{
			Title:     title,
			ImageData: resp.ImageData,
		}, nil
	}

	return NewLoader(common.PanelSolarSystem, fetch, emit)
}

func cachedSkyshot(ctx context.Context, client *panchanga.Client, images *cache.ImageCache, key string, req panchanga.VisualizationRequest) (*panchanga.SkyshotResponse, error) {
	if images != nil {
		if data, ok := images.Get(key); ok {
			var cached panchanga.SkyshotResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := client.Skyshot(ctx, req)
	if err != nil {
		return nil, err
	}

	if images != nil {
		if data, err := json.Marshal(resp); err == nil {
			images.Set(key, data)
		}
	}
	return resp, nil
}

func cachedSolarSystem(ctx context.Context, client *panchanga.Client, images *cache.ImageCache, key string, req panchanga.VisualizationRequest) (*panchanga.SolarSystemResponse, error) {
	if images != nil {
		if data, ok := images.Get(key); ok {
			var cached panchanga.SolarSystemResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := client.SolarSystem(ctx, req)
	if err != nil {
		return nil, err
	}

	if images != nil {
		if data, err := json.Marshal(resp); err == nil {
			images.Set(key, data)
		}
	}
	return resp, nil
}
