package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestICalFilename(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"simple title", "My Event", "My_Event.ics"},
		{"multiple spaces collapse", "My   Event", "My_Event.ics"},
		{"tabs and spaces", "My \t Event", "My_Event.ics"},
		{"single word", "Birthday", "Birthday.ics"},
		{"empty falls back", "", "Panchanga_Event.ics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ICalFilename(tt.title))
		})
	}
}

func TestFormatCoordinates(t *testing.T) {
	require.Equal(t, "12.9716, 77.5946", FormatCoordinates(12.9716, 77.5946))
	require.Equal(t, "-33.8688, 151.2093", FormatCoordinates(-33.8688, 151.2093))
	require.Equal(t, "0, 0", FormatCoordinates(0, 0))
}
