package viewmodel

import (
	"fmt"
	"strconv"

	"panchanga-desktop/internal/panchanga"
)

// Placeholder is shown for display fields the service did not supply.
// Missing data degrades to a visible dash, never to a blank or a failure.
const Placeholder = "-"

// ResultView is the display-ready projection of one panchanga result. Every
// field is final text content for its UI region; the frontend only
// transcribes values into the matching elements.
type ResultView struct {
	Heading      string `json:"heading"`
	Samvatsara   string `json:"samvatsara"`
	SakaYear     string `json:"sakaYear"`
	Masa         string `json:"masa"`
	Paksha       string `json:"paksha"`
	Tithi        string `json:"tithi"`
	Vara         string `json:"vara"`
	Nakshatra    string `json:"nakshatra"`
	Yoga         string `json:"yoga"`
	Karana       string `json:"karana"`
	Rashi        string `json:"rashi"`
	Lagna        string `json:"lagna"`
	Sunrise      string `json:"sunrise"`
	Sunset       string `json:"sunset"`
	NextBirthday string `json:"nextBirthday"`
	Location     string `json:"location"` // "address (timezone)"
	Report       string `json:"report"`
}

// RenderUpdate bundles everything one successful fetch changes on screen:
// the primary field grid plus the derived fact cards.
type RenderUpdate struct {
	View  ResultView `json:"view"`
	Cards []FactCard `json:"cards"`
}

// BuildResultView maps a result into display text. The user's original event
// title serves as the heading since the service does not echo one back.
func BuildResultView(res *panchanga.Result, formTitle string) ResultView {
	heading := formTitle
	if heading == "" {
		heading = "Event"
	}

	view := ResultView{
		Heading:      heading,
		Samvatsara:   orPlaceholder(res.Samvatsara),
		SakaYear:     Placeholder,
		Masa:         orPlaceholder(res.Masa),
		Paksha:       orPlaceholder(res.Paksha),
		Tithi:        orPlaceholder(res.Tithi),
		Vara:         orPlaceholder(res.Vara),
		Nakshatra:    orPlaceholder(res.Nakshatra),
		Yoga:         orPlaceholder(res.Yoga),
		Karana:       Placeholder,
		Rashi:        Placeholder,
		Lagna:        Placeholder,
		Sunrise:      orPlaceholder(res.Sunrise),
		Sunset:       orPlaceholder(res.Sunset),
		NextBirthday: orPlaceholder(res.NextBirthday),
		Location:     fmt.Sprintf("%s (%s)", res.Address, res.Timezone),
		Report:       res.Report,
	}

	if res.SakaYear != 0 {
		view.SakaYear = strconv.Itoa(res.SakaYear)
	}
	if res.Karana != 0 {
		view.Karana = strconv.Itoa(res.Karana)
	}
	if res.Rashi != nil && res.Rashi.Name != "" {
		view.Rashi = res.Rashi.Name
	}
	if res.Lagna != nil && res.Lagna.Name != "" {
		view.Lagna = res.Lagna.Name
	}

	return view
}

// BuildRenderUpdate maps one result into the full render payload
func BuildRenderUpdate(res *panchanga.Result, formTitle string) RenderUpdate {
	return RenderUpdate{
		View:  BuildResultView(res, formTitle),
		Cards: BuildFactCards(res.Angular),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
