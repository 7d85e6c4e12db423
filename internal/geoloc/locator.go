// Package geoloc acquires the device position on demand. One attempt per
// call, two outcomes: a coordinate pair or an error the caller surfaces.
package geoloc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"panchanga-desktop/internal/utils/naming"
)

// Position is a geographic coordinate pair in decimal degrees
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Format renders the position as the "latitude, longitude" string the
// location field accepts
func (p Position) Format() string {
	return naming.FormatCoordinates(p.Latitude, p.Longitude)
}

// Locator resolves the device's current position
type Locator interface {
	Acquire(ctx context.Context) (Position, error)
}

// DefaultEndpoint is the public IP geolocation service queried by IPLocator
const DefaultEndpoint = "http://ip-api.com/json"

// IPLocator estimates the device position from its public IP address.
// Desktop machines rarely expose a positioning sensor, so IP geolocation
// stands in for the platform position source.
type IPLocator struct {
	endpoint   string
	httpClient *http.Client
}

// NewIPLocator creates a locator against the given endpoint (DefaultEndpoint
// when empty)
func NewIPLocator(endpoint string) *IPLocator {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &IPLocator{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
	}
}

// Acquire queries the geolocation service once. No retry; the caller decides
// what a failure means for the UI.
func (l *IPLocator) Acquire(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Position{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("geolocation request failed with status: %d", resp.StatusCode)
	}

	var body struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, fmt.Errorf("failed to parse geolocation response: %w", err)
	}

	if body.Status != "success" {
		return Position{}, fmt.Errorf("geolocation lookup failed: %s", body.Message)
	}

	return Position{Latitude: body.Lat, Longitude: body.Lon}, nil
}
