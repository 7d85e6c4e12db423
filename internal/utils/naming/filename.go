package naming

import (
	"regexp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ICalFilename derives the download filename for a calendar export from the
// event title: whitespace runs collapse to single underscores, extension
// .ics. Matches the filename the service suggests in its own
// Content-Disposition header.
func ICalFilename(title string) string {
	name := whitespaceRun.ReplaceAllString(title, "_")
	if name == "" {
		name = "Panchanga_Event"
	}
	return name + ".ics"
}
