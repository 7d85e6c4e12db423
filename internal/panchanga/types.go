package panchanga

import (
	"fmt"
	"time"

	"panchanga-desktop/internal/common"
)

// Supported display languages for calendrical names
const (
	LangEnglish  = "EN"
	LangKannada  = "KN"
	LangSanskrit = "SA"
)

// RequestRecord is the full event description submitted to the calculation
// service. All fields are plain strings at this boundary; the service owns
// parsing and validation. Records are constructed fresh from current form
// state before every call and never cached between calls.
type RequestRecord struct {
	Title    string `json:"title"`
	Date     string `json:"date"`     // calendar date, YYYY-MM-DD
	Time     string `json:"time"`     // local clock time, HH:MM
	Location string `json:"location"` // free-text place name or "lat, lon"
	Lang     string `json:"lang"`
}

// Validate checks the fields verifiable without a service round-trip. The
// service still owns full validation; this catches malformed dates and clock
// times before a request is spent on them.
func (r RequestRecord) Validate() error {
	if !common.ValidateISO8601(r.Date) {
		return fmt.Errorf("please enter a valid date (YYYY-MM-DD)")
	}
	if _, err := time.Parse(common.ClockTime, r.Time); err != nil {
		return fmt.Errorf("please enter a valid time (HH:MM)")
	}
	return nil
}

// VisualizationRequest is the narrower projection used by the imagery
// endpoints (/api/skyshot and /api/solar-system).
type VisualizationRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Title    string `json:"title"`
}

// VisualizationRequest projects a request record down to the fields the
// imagery endpoints accept.
func (r RequestRecord) VisualizationRequest() VisualizationRequest {
	return VisualizationRequest{
		Date:     r.Date,
		Time:     r.Time,
		Location: r.Location,
		Title:    r.Title,
	}
}

// AngularData carries the angular quantities the service computes for a
// moment: sidereal ecliptic longitudes in degrees [0,360), the Sun-Moon
// separation in degrees [0,180], and the ayanamsha offset in degrees.
type AngularData struct {
	SunSidereal  float64 `json:"sun_sidereal"`
	MoonSidereal float64 `json:"moon_sidereal"`
	PhaseAngle   float64 `json:"phase_angle"`
	Ayanamsha    float64 `json:"ayanamsha"`
}

// NamedPoint is a zodiacal position the service reports by name only
// (rashi = Moon sign, lagna = ascendant).
type NamedPoint struct {
	Name string `json:"name"`
}

// Result is the heterogeneous panchanga response payload. Any field may be
// absent in older service versions; absence degrades to a placeholder in the
// view, never a failure.
type Result struct {
	Samvatsara    string       `json:"samvatsara"`
	SakaYear      int          `json:"saka_year,omitempty"`
	Masa          string       `json:"masa"`
	Paksha        string       `json:"paksha"`
	Tithi         string       `json:"tithi"`
	Vara          string       `json:"vara"`
	Nakshatra     string       `json:"nakshatra"`
	Yoga          string       `json:"yoga"`
	Karana        int          `json:"karana,omitempty"`
	Rashi         *NamedPoint  `json:"rashi,omitempty"`
	Lagna         *NamedPoint  `json:"lagna,omitempty"`
	Sunrise       string       `json:"sunrise,omitempty"`
	Sunset        string       `json:"sunset,omitempty"`
	NextBirthday  string       `json:"next_birthday,omitempty"`
	Address       string       `json:"address"`
	Timezone      string       `json:"timezone"`
	InputDatetime string       `json:"input_datetime,omitempty"`
	Report        string       `json:"report,omitempty"`
	Angular       *AngularData `json:"angular,omitempty"`
}

// SkyshotResponse is the inline sky-map render for a moment. ImageData is a
// display-ready image reference (data URI) assigned directly as an image
// source. MoonLongitude and PhaseAngle feed the caption when both are set.
type SkyshotResponse struct {
	ImageData     string   `json:"image_data"`
	Nakshatra     string   `json:"nakshatra"`
	MoonLongitude *float64 `json:"moon_longitude,omitempty"`
	PhaseAngle    *float64 `json:"phase_angle,omitempty"`
}

// SolarSystemResponse is the inline heliocentric render for a moment.
type SolarSystemResponse struct {
	ImageData string `json:"image_data"`
}

// ServiceError is a failure the service reported through its structured
// success flag, as opposed to a transport failure. The message is the
// service's own and is shown to the user verbatim.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
