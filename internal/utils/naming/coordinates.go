package naming

import (
	"strconv"
)

// FormatCoordinates renders a coordinate pair as the "latitude, longitude"
// string the location field and the calculation service accept. Formatting
// is locale-invariant: decimal point, full precision, no grouping.
func FormatCoordinates(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lon, 'f', -1, 64)
}
