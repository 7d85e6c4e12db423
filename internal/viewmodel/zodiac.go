package viewmodel

import (
	"fmt"
	"math"
)

// SignNames is the fixed 12-entry sidereal zodiac table. A sidereal ecliptic
// longitude maps to an entry via floor(longitude/30) mod 12.
var SignNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// traditionalNames holds the transliterated traditional sign names. The
// Kannada and Sanskrit transliterations coincide for all twelve signs, so a
// single table serves every display language.
var traditionalNames = [12]string{
	"Mesha", "Vrishabha", "Mithuna", "Karkataka", "Simha", "Kanya",
	"Tula", "Vrishchika", "Dhanu", "Makara", "Kumbha", "Meena",
}

// SignIndex maps a sidereal ecliptic longitude in degrees to its zodiac sign
// index in [0,11]. Longitudes outside [0,360) wrap.
func SignIndex(longitude float64) int {
	idx := int(math.Floor(longitude/30)) % 12
	if idx < 0 {
		idx += 12
	}
	return idx
}

// SignName returns the fixed-table name for a sidereal longitude
func SignName(longitude float64) string {
	return SignNames[SignIndex(longitude)]
}

// LocalizedSignName returns the display form "Traditional (Western)",
// e.g. "Mesha (Aries)"
func LocalizedSignName(longitude float64) string {
	idx := SignIndex(longitude)
	return fmt.Sprintf("%s (%s)", traditionalNames[idx], SignNames[idx])
}
