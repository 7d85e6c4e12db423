package panchanga

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"panchanga-desktop/internal/ratelimit"
)

const (
	// DefaultServiceURL is where a locally run calculation service listens
	DefaultServiceURL = "http://127.0.0.1:8080"

	// User agent
	UserAgent = "PanchangaDesktop/1.0"

	// Form field carrying the serialized result payload to the insights page
	InsightsField = "panchanga_data"
)

// Client handles communication with the panchanga calculation service
type Client struct {
	baseURL    string
	httpClient *http.Client
	limits     *ratelimit.Handler
}

// NewClient creates a new calculation-service client with system proxy support
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultServiceURL
	}

	// Use http.ProxyFromEnvironment to respect system proxy settings
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// Sky renders can take a while server-side
			Timeout:   60 * time.Second,
			Transport: transport,
		},
	}
}

// BaseURL returns the configured service base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetRateLimitHandler attaches a rate limit handler; every response passes
// through it so back-off state tracks the service's actual behavior
func (c *Client) SetRateLimitHandler(h *ratelimit.Handler) {
	c.limits = h
}

// postJSON issues one POST with a JSON body and returns the raw response
func (c *Client) postJSON(ctx context.Context, service, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if c.limits != nil && c.limits.CheckResponse(service, resp) {
		resp.Body.Close()
		return nil, fmt.Errorf("service rate limited (status %d)", resp.StatusCode)
	}

	return resp, nil
}

// Submit sends a full request record to /api/panchanga and returns the
// computed result. A *ServiceError return means the service completed the
// request but reported failure; any other error is a transport failure.
func (c *Client) Submit(ctx context.Context, record RequestRecord) (*Result, error) {
	resp, err := c.postJSON(ctx, ratelimit.ServiceCalculation, "/api/panchanga", record)
	if err != nil {
		return nil, fmt.Errorf("panchanga request failed: %w", err)
	}
	defer resp.Body.Close()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to parse panchanga response: %w", err)
	}

	if !env.Success {
		return nil, &ServiceError{Message: env.Error}
	}

	var result Result
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse panchanga result: %w", err)
	}

	return &result, nil
}

// GenerateICal sends a request record to /api/generate-ical and returns the
// calendar file body as opaque bytes suitable for saving to disk.
func (c *Client) GenerateICal(ctx context.Context, record RequestRecord) ([]byte, error) {
	resp, err := c.postJSON(ctx, ratelimit.ServiceCalculation, "/api/generate-ical", record)
	if err != nil {
		return nil, fmt.Errorf("ical request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Failure bodies are a JSON error record
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			return nil, &ServiceError{Message: errBody.Error}
		}
		return nil, fmt.Errorf("ical request failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ical body: %w", err)
	}

	return data, nil
}

// Skyshot requests the ecliptic-wheel sky render for a moment
func (c *Client) Skyshot(ctx context.Context, req VisualizationRequest) (*SkyshotResponse, error) {
	resp, err := c.postJSON(ctx, ratelimit.ServiceRendering, "/api/skyshot", req)
	if err != nil {
		return nil, fmt.Errorf("skyshot request failed: %w", err)
	}
	defer resp.Body.Close()

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		SkyshotResponse
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to parse skyshot response: %w", err)
	}

	if !env.Success {
		return nil, &ServiceError{Message: env.Error}
	}

	out := env.SkyshotResponse
	return &out, nil
}

// SolarSystem requests the heliocentric top-down render for a moment
func (c *Client) SolarSystem(ctx context.Context, req VisualizationRequest) (*SolarSystemResponse, error) {
	resp, err := c.postJSON(ctx, ratelimit.ServiceRendering, "/api/solar-system", req)
	if err != nil {
		return nil, fmt.Errorf("solar system request failed: %w", err)
	}
	defer resp.Body.Close()

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		SolarSystemResponse
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to parse solar system response: %w", err)
	}

	if !env.Success {
		return nil, &ServiceError{Message: env.Error}
	}

	out := env.SolarSystemResponse
	return &out, nil
}

// Insights performs the one-shot payload transfer to the insights page: a
// form POST carrying the serialized result as a single opaque field, exactly
// as a synthesized form submission would. The returned bytes are the new
// page's document.
func (c *Client) Insights(ctx context.Context, payload []byte) ([]byte, error) {
	form := url.Values{InsightsField: {string(payload)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/insights",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("insights request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("insights request failed with status: %d", resp.StatusCode)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read insights page: %w", err)
	}

	return page, nil
}
