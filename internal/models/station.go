package models

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Station represents a UK tidal station from the Admiralty directory.
// Name and Position are nil when the directory entry omitted them.
type Station struct {
	ID       string       // Opaque Admiralty identifier (e.g. "0001")
	Name     *string      // Display name (e.g. "Dover")
	Position *Coordinates // nil when geometry was missing or malformed
}

// DisplayName returns the station name or an empty string if it has none
func (s Station) DisplayName() string {
	if s.Name == nil {
		return ""
	}
	return *s.Name
}

// HasName reports whether the directory entry carried a name
func (s Station) HasName() bool {
	return s.Name != nil
}

// NewStation is a convenience constructor for a fully populated station
func NewStation(id, name string, lat, lon float64) Station {
	return Station{
		ID:       id,
		Name:     &name,
		Position: &Coordinates{Latitude: lat, Longitude: lon},
	}
}
