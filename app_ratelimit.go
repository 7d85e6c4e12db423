package main

import (
	"panchanga-desktop/internal/ratelimit"
)

// Rate Limit Management Functions (Wails-exported)

// ManualRetryRateLimit allows the user to manually clear a service's
// rate-limit state and try again
func (a *App) ManualRetryRateLimit(service string) {
	if a.rateLimitHandler != nil {
		a.rateLimitHandler.ManualRetry(service)
	}
}

// GetRateLimitStatus returns the current rate limit state for a service
func (a *App) GetRateLimitStatus(service string) *ratelimit.Event {
	if a.rateLimitHandler != nil {
		return a.rateLimitHandler.GetCurrentState(service)
	}
	return nil
}

// IsRateLimited checks if a service is currently rate limited
func (a *App) IsRateLimited(service string) bool {
	if a.rateLimitHandler != nil {
		return a.rateLimitHandler.IsRateLimited(service)
	}
	return false
}

// SetAutoRetryRateLimit enables or disables automatic rate limit retries
func (a *App) SetAutoRetryRateLimit(enabled bool) {
	if a.rateLimitHandler != nil {
		a.rateLimitHandler.SetAutoRetry(enabled)
	}

	// Update settings
	a.mu.Lock()
	if a.settings != nil {
		a.settings.AutoRetryOnRateLimit = enabled
		// Note: Settings will be saved when the user next saves settings
	}
	a.mu.Unlock()
}
