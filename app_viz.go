package main

import (
	"panchanga-desktop/internal/cache"
	"panchanga-desktop/internal/panchanga"
)

// Visualization Panel Functions (Wails-exported)
//
// Both panels can be re-triggered independently of a submission, always with
// a request built from current form values so mid-session edits are honored.
// Re-triggering while an earlier load is still in flight is safe: each
// loader discards responses from superseded loads.

// LoadSkyshot re-runs the sky map pipeline
func (a *App) LoadSkyshot(req panchanga.VisualizationRequest) {
	go a.skyshot.Load(a.ctx, req)
}

// LoadSolarSystem re-runs the heliocentric view pipeline
func (a *App) LoadSolarSystem(req panchanga.VisualizationRequest) {
	go a.solarSystem.Load(a.ctx, req)
}

// ImageCacheStats represents image cache statistics for the frontend
type ImageCacheStats struct {
	Entries   int    `json:"entries"`
	CachePath string `json:"cachePath"`
}

// GetImageCacheStats returns current visualization cache statistics
func (a *App) GetImageCacheStats() ImageCacheStats {
	if a.imageCache == nil {
		return ImageCacheStats{}
	}

	return ImageCacheStats{
		Entries:   a.imageCache.Len(),
		CachePath: cache.GetCacheDir(),
	}
}
