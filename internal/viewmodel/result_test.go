package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"panchanga-desktop/internal/panchanga"
)

func fullResult() *panchanga.Result {
	return &panchanga.Result{
		Samvatsara:   "Krodhi",
		SakaYear:     1946,
		Masa:         "Chaitra",
		Paksha:       "Shukla",
		Tithi:        "Pratipada",
		Vara:         "Somavara",
		Nakshatra:    "Ashwini",
		Yoga:         "Vishkambha",
		Karana:       3,
		Rashi:        &panchanga.NamedPoint{Name: "Mesha"},
		Lagna:        &panchanga.NamedPoint{Name: "Simha"},
		Sunrise:      "06:12:45",
		Sunset:       "18:33:02",
		NextBirthday: "2027-04-08",
		Address:      "Bengaluru, India",
		Timezone:     "Asia/Kolkata",
	}
}

func TestBuildResultView(t *testing.T) {
	view := BuildResultView(fullResult(), "My Birthday")

	require.Equal(t, "My Birthday", view.Heading)
	require.Equal(t, "Krodhi", view.Samvatsara)
	require.Equal(t, "1946", view.SakaYear)
	require.Equal(t, "Somavara", view.Vara)
	require.Equal(t, "3", view.Karana)
	require.Equal(t, "Mesha", view.Rashi)
	require.Equal(t, "Simha", view.Lagna)
	require.Equal(t, "06:12:45", view.Sunrise)
	require.Equal(t, "Bengaluru, India (Asia/Kolkata)", view.Location)
}

func TestBuildResultViewPlaceholders(t *testing.T) {
	res := fullResult()
	res.Sunrise = ""
	res.Sunset = ""
	res.SakaYear = 0
	res.Rashi = nil
	res.NextBirthday = ""

	view := BuildResultView(res, "")

	// Missing data degrades to a visible dash rather than a blank
	require.Equal(t, Placeholder, view.Sunrise)
	require.Equal(t, Placeholder, view.Sunset)
	require.Equal(t, Placeholder, view.SakaYear)
	require.Equal(t, Placeholder, view.Rashi)
	require.Equal(t, Placeholder, view.NextBirthday)

	// Heading falls back when the user gave no title
	require.Equal(t, "Event", view.Heading)
}

func TestBuildRenderUpdate(t *testing.T) {
	res := fullResult()
	res.Angular = &panchanga.AngularData{SunSidereal: 45, MoonSidereal: 200, PhaseAngle: 180, Ayanamsha: 24}

	update := BuildRenderUpdate(res, "Wedding")

	require.Equal(t, "Wedding", update.View.Heading)
	require.Len(t, update.Cards, 4)
	require.Equal(t, "Full Moon", update.Cards[2].Value)
}
