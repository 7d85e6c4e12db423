package common

// Panel name constants for consistent naming across events, cache keys and
// analytics
const (
	// PanelSkyshot is the internal identifier for the ecliptic-wheel sky map
	PanelSkyshot = "skyshot"

	// PanelSolarSystem is the internal identifier for the heliocentric view
	PanelSolarSystem = "solar_system"

	// DisplayNameSkyshot is the human-readable name shown in the UI
	DisplayNameSkyshot = "Sky Shot"

	// DisplayNameSolarSystem is the human-readable name shown in the UI
	DisplayNameSolarSystem = "Solar System"
)

// PanelDisplayName maps a panel identifier to its human-readable name.
// Unknown identifiers pass through unchanged.
func PanelDisplayName(panel string) string {
	switch panel {
	case PanelSkyshot:
		return DisplayNameSkyshot
	case PanelSolarSystem:
		return DisplayNameSolarSystem
	}
	return panel
}
