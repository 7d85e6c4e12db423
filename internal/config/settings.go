package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserSettings represents persistent user preferences
type UserSettings struct {
	// Calculation service
	ServiceURL string `json:"serviceURL"`

	// Display language for calendrical names: "EN", "KN" or "SA"
	Language string `json:"language"`

	// Default form values
	DefaultTitle    string `json:"defaultTitle"`
	DefaultLocation string `json:"defaultLocation"`

	// Calendar export
	DownloadPath        string `json:"downloadPath"`
	AutoOpenDownloadDir bool   `json:"autoOpenDownloadDir"`

	// Visualization image cache
	CacheMaxEntries int `json:"cacheMaxEntries"`

	// Rate limit handling
	AutoRetryOnRateLimit bool `json:"autoRetryOnRateLimit"`

	// Anonymous per-install identifier for analytics
	InstallID string `json:"installID,omitempty"`

	// UI preferences
	Theme string `json:"theme"` // "light", "dark", "system"
}

// DefaultSettings returns default user settings
func DefaultSettings() *UserSettings {
	homeDir, _ := os.UserHomeDir()
	downloadPath := filepath.Join(homeDir, "Downloads", "panchanga")

	return &UserSettings{
		ServiceURL:           "http://127.0.0.1:8080",
		Language:             "EN",
		DefaultTitle:         "",
		DefaultLocation:      "",
		DownloadPath:         downloadPath,
		AutoOpenDownloadDir:  true,
		CacheMaxEntries:      64,
		AutoRetryOnRateLimit: true,
		Theme:                "system",
	}
}

// GetSettingsPath returns the OS-specific settings file path
func GetSettingsPath() string {
	homeDir, _ := os.UserHomeDir()

	baseDir := filepath.Join(homeDir, ".panchanga-desktop", "settings")

	// Ensure directory exists
	os.MkdirAll(baseDir, 0755)

	return filepath.Join(baseDir, "settings.json")
}

// GetDataDir returns the directory holding persisted application data
// (stored results, visualization cache)
func GetDataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".panchanga-desktop")
}

// ValidLanguage reports whether a language code is one the service accepts
func ValidLanguage(lang string) bool {
	switch lang {
	case "EN", "KN", "SA":
		return true
	}
	return false
}

// LoadSettings loads user settings from disk
func LoadSettings() (*UserSettings, error) {
	settingsPath := GetSettingsPath()

	// If file doesn't exist, return defaults
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	// Merge with defaults for any missing fields
	defaults := DefaultSettings()
	if settings.ServiceURL == "" {
		settings.ServiceURL = defaults.ServiceURL
	}
	if !ValidLanguage(settings.Language) {
		settings.Language = defaults.Language
	}
	if settings.DownloadPath == "" {
		settings.DownloadPath = defaults.DownloadPath
	}
	if settings.CacheMaxEntries <= 0 {
		settings.CacheMaxEntries = defaults.CacheMaxEntries
	}
	if settings.Theme == "" {
		settings.Theme = defaults.Theme
	}

	return &settings, nil
}

// SaveSettings saves user settings to disk
func SaveSettings(settings *UserSettings) error {
	settingsPath := GetSettingsPath()

	// Ensure directory exists
	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(settingsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
