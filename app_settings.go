package main

import (
	"fmt"
	"log"

	"panchanga-desktop/internal/config"
)

// ===================
// Settings Management
// ===================

// GetSettings returns current user settings
func (a *App) GetSettings() (*config.UserSettings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Return a copy to prevent external modifications
	settingsCopy := *a.settings
	return &settingsCopy, nil
}

// SaveSettings saves user settings to disk and updates app state
func (a *App) SaveSettings(settings *config.UserSettings) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Validate settings
	if settings.ServiceURL == "" {
		return fmt.Errorf("service URL cannot be empty")
	}
	if !config.ValidLanguage(settings.Language) {
		return fmt.Errorf("invalid language: %s (must be EN, KN or SA)", settings.Language)
	}
	if settings.DownloadPath == "" {
		return fmt.Errorf("download path cannot be empty")
	}
	if settings.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache size must be positive")
	}

	// The install ID is app-managed; never let the frontend clear it
	settings.InstallID = a.settings.InstallID

	// Save to disk
	if err := config.SaveSettings(settings); err != nil {
		return err
	}

	// Update app state
	a.settings = settings
	a.downloadPath = settings.DownloadPath
	a.rateLimitHandler.SetAutoRetry(settings.AutoRetryOnRateLimit)

	// Note: Service URL and cache settings require app restart to take effect
	log.Printf("Settings saved. Service and cache settings will apply on next restart.")

	return nil
}

// GetSettingsPath returns the OS-specific settings file path
func (a *App) GetSettingsPath() string {
	return config.GetSettingsPath()
}

// SetLanguage updates only the display language, persisting it for the next
// session
func (a *App) SetLanguage(lang string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !config.ValidLanguage(lang) {
		return fmt.Errorf("invalid language: %s", lang)
	}

	a.settings.Language = lang

	if err := config.SaveSettings(a.settings); err != nil {
		return err
	}

	log.Printf("Language set to %s", lang)
	return nil
}

// SaveDefaultEvent remembers the last used title and location as form
// defaults for the next session
func (a *App) SaveDefaultEvent(title, location string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.settings.DefaultTitle = title
	a.settings.DefaultLocation = location

	if err := config.SaveSettings(a.settings); err != nil {
		return err
	}

	log.Printf("Saved default event: title=%q location=%q", title, location)
	return nil
}
