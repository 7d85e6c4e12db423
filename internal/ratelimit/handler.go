package ratelimit

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// Service identifiers for the two upstream endpoint groups. The rendering
// endpoints (skyshot, solar system) are far heavier server-side than the
// calculation endpoint and throttle independently.
const (
	ServiceCalculation = "calculation"
	ServiceRendering   = "rendering"
)

// RetryStrategy defines the backoff intervals for rate limit retries
type RetryStrategy struct {
	Intervals  []time.Duration
	MaxRetries int
}

// DefaultRetryStrategy returns the default backoff strategy
func DefaultRetryStrategy() *RetryStrategy {
	return &RetryStrategy{
		Intervals: []time.Duration{
			30 * time.Second, // First retry after 30s
			1 * time.Minute,  // Second retry after 1 min
			2 * time.Minute,  // Third retry after 2 mins
			5 * time.Minute,  // Fourth+ retries after 5 mins
		},
		MaxRetries: 6, // Maximum number of automatic retries before giving up
	}
}

// Event represents a rate limit occurrence on one upstream service
type Event struct {
	Timestamp    time.Time `json:"timestamp" ts_type:"string"`
	Service      string    `json:"service"`      // "calculation" or "rendering"
	StatusCode   int       `json:"statusCode"`   // HTTP status code (429, 503, etc.)
	RetryAttempt int       `json:"retryAttempt"` // Current retry attempt (0 = first occurrence)
	NextRetryAt  time.Time `json:"nextRetryAt" ts_type:"string"`
	Message      string    `json:"message"` // User-friendly message
}

// Handler manages rate limit detection and retry scheduling
type Handler struct {
	mu               sync.RWMutex
	limited          map[string]*Event // service -> current rate limit state
	strategy         *RetryStrategy
	onRateLimit      func(event Event) // Callback for UI notification
	onRetry          func(event Event) // Callback for retry notification
	onRecovered      func(service string)
	autoRetryEnabled bool
	ctx              context.Context
	cancel           context.CancelFunc
}

// NewHandler creates a new rate limit handler
func NewHandler(strategy *RetryStrategy) *Handler {
	if strategy == nil {
		strategy = DefaultRetryStrategy()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Handler{
		limited:          make(map[string]*Event),
		strategy:         strategy,
		autoRetryEnabled: true,
		ctx:              ctx,
		cancel:           cancel,
	}
}

// SetOnRateLimit sets the callback for rate limit events
func (h *Handler) SetOnRateLimit(callback func(event Event)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRateLimit = callback
}

// SetOnRetry sets the callback for retry attempts
func (h *Handler) SetOnRetry(callback func(event Event)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRetry = callback
}

// SetOnRecovered sets the callback for recovery from rate limit
func (h *Handler) SetOnRecovered(callback func(service string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecovered = callback
}

// IsRateLimited checks if a service is currently rate limited
func (h *Handler) IsRateLimited(service string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, limited := h.limited[service]
	return limited
}

// CheckResponse analyzes an HTTP response for rate limit indicators
func (h *Handler) CheckResponse(service string, resp *http.Response) bool {
	isRateLimited := resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusServiceUnavailable

	if !isRateLimited {
		// Check if we were previously rate limited and have now recovered
		h.checkRecovery(service)
		return false
	}

	h.recordRateLimit(service, resp.StatusCode)
	return true
}

// recordRateLimit records a rate limit event and schedules retry
func (h *Handler) recordRateLimit(service string, statusCode int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	existing, exists := h.limited[service]

	retryAttempt := 0
	if exists {
		retryAttempt = existing.RetryAttempt + 1
	}

	var interval time.Duration
	if retryAttempt < len(h.strategy.Intervals) {
		interval = h.strategy.Intervals[retryAttempt]
	} else {
		// Use last interval for all subsequent retries
		interval = h.strategy.Intervals[len(h.strategy.Intervals)-1]
	}

	nextRetryAt := time.Now().Add(interval)

	event := Event{
		Timestamp:    time.Now(),
		Service:      service,
		StatusCode:   statusCode,
		RetryAttempt: retryAttempt,
		NextRetryAt:  nextRetryAt,
		Message:      h.buildMessage(service, statusCode, retryAttempt, nextRetryAt),
	}

	h.limited[service] = &event

	log.Printf("[RateLimit] %s rate limited (attempt %d). Next retry at %s",
		service, retryAttempt, nextRetryAt.Format(time.RFC3339))

	// Notify UI
	if h.onRateLimit != nil {
		go h.onRateLimit(event)
	}

	// Schedule auto-retry if enabled
	if h.autoRetryEnabled && retryAttempt < h.strategy.MaxRetries {
		go h.scheduleRetry(service, event)
	}
}

// scheduleRetry schedules an automatic retry after the backoff interval
func (h *Handler) scheduleRetry(service string, event Event) {
	waitDuration := time.Until(event.NextRetryAt)

	select {
	case <-time.After(waitDuration):
		h.mu.Lock()
		current, exists := h.limited[service]
		if !exists || current.Timestamp != event.Timestamp {
			// Rate limit was already cleared or replaced
			h.mu.Unlock()
			return
		}
		h.mu.Unlock()

		log.Printf("[RateLimit] Auto-retrying %s after %s wait", service, waitDuration)

		if h.onRetry != nil {
			go h.onRetry(event)
		}

		// The actual retry happens on the next user-triggered request; callers
		// check IsRateLimited() before submitting.

	case <-h.ctx.Done():
		return
	}
}

// checkRecovery clears the state when a service responds normally again
func (h *Handler) checkRecovery(service string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.limited[service]; exists {
		delete(h.limited, service)
		log.Printf("[RateLimit] %s rate limit cleared", service)

		if h.onRecovered != nil {
			go h.onRecovered(service)
		}
	}
}

// ManualRetry allows the user to manually trigger a retry
func (h *Handler) ManualRetry(service string) {
	h.mu.Lock()
	event, exists := h.limited[service]
	if !exists {
		h.mu.Unlock()
		return
	}

	log.Printf("[RateLimit] Manual retry requested for %s", service)

	delete(h.limited, service)
	h.mu.Unlock()

	if h.onRetry != nil {
		go h.onRetry(*event)
	}
}

// SetAutoRetry enables or disables automatic retries
func (h *Handler) SetAutoRetry(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.autoRetryEnabled = enabled
}

// GetCurrentState returns the current rate limit state for a service
func (h *Handler) GetCurrentState(service string) *Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if event, exists := h.limited[service]; exists {
		eventCopy := *event
		return &eventCopy
	}
	return nil
}

// buildMessage creates a user-friendly message
func (h *Handler) buildMessage(service string, statusCode int, retryAttempt int, nextRetryAt time.Time) string {
	what := "Panchanga calculations"
	if service == ServiceRendering {
		what = "Sky renders"
	}

	waitDuration := time.Until(nextRetryAt)
	seconds := int(waitDuration.Seconds())

	var message string
	if retryAttempt == 0 {
		message = fmt.Sprintf(
			"%s are rate limited (HTTP %d). "+
				"Wait %d seconds for automatic retry, or try again later.",
			what, statusCode, seconds)
	} else {
		message = fmt.Sprintf(
			"%s still rate limited (retry attempt %d). Next automatic retry in %d seconds.",
			what, retryAttempt+1, seconds)
	}

	return message
}

// Close shuts down the rate limit handler
func (h *Handler) Close() {
	h.cancel()
}
