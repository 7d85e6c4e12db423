package viewmodel

import (
	"fmt"
	"math"

	"panchanga-desktop/internal/panchanga"
)

// phaseTolerance absorbs floating-point jitter from the upstream ephemeris
// at the exact new/full moon boundaries.
const phaseTolerance = 0.05

// FactCard is a short derived-insight tile computed client-side from angular
// response data, not returned verbatim by the service.
type FactCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PhaseLabel renders a Sun-Moon separation angle as a moon phase label.
// Angles at (or within tolerance of) 0° and 180° get the named phases;
// everything else shows the separation to one decimal place.
func PhaseLabel(phaseAngle float64) string {
	switch {
	case math.Abs(phaseAngle) <= phaseTolerance:
		return "New Moon"
	case math.Abs(phaseAngle-180) <= phaseTolerance:
		return "Full Moon"
	default:
		return fmt.Sprintf("%.1f° separation", phaseAngle)
	}
}

// BuildFactCards derives the four insight cards from the angular block.
// Returns nil when the service supplied no angular data, which keeps the
// card section hidden rather than showing bogus zero-angle cards.
func BuildFactCards(angular *panchanga.AngularData) []FactCard {
	if angular == nil {
		return nil
	}

	return []FactCard{
		{Label: "Sun Sign (Sidereal)", Value: LocalizedSignName(angular.SunSidereal)},
		{Label: "Moon Sign (Sidereal)", Value: LocalizedSignName(angular.MoonSidereal)},
		{Label: "Moon Phase", Value: PhaseLabel(angular.PhaseAngle)},
		{Label: "Ayanamsha", Value: fmt.Sprintf("%.2f°", angular.Ayanamsha)},
	}
}
