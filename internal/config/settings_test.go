package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	require.Equal(t, "http://127.0.0.1:8080", settings.ServiceURL)
	require.Equal(t, "EN", settings.Language)
	require.True(t, settings.AutoOpenDownloadDir)
	require.True(t, settings.AutoRetryOnRateLimit)
	require.Equal(t, 64, settings.CacheMaxEntries)
	require.Equal(t, "system", settings.Theme)
	require.NotEmpty(t, settings.DownloadPath)
}

func TestValidLanguage(t *testing.T) {
	require.True(t, ValidLanguage("EN"))
	require.True(t, ValidLanguage("KN"))
	require.True(t, ValidLanguage("SA"))
	require.False(t, ValidLanguage("en"))
	require.False(t, ValidLanguage("DE"))
	require.False(t, ValidLanguage(""))
}
