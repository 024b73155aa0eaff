package stations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ngmaloney/uk-tide-terminal/internal/geocoding"
	"github.com/ngmaloney/uk-tide-terminal/internal/models"
)

// MissingPositionPenalty is the distance assigned to stations without
// coordinates. The largest real squared distance in degrees is 180²+360².
const MissingPositionPenalty = 1e6

// ErrInvalidLocation is returned when the query can not be geocoded.
// Callers must not go on to fetch tides.
var ErrInvalidLocation = errors.New("invalid location")

// Notice texts shown to the user
const (
	InvalidLocationNotice = "Invalid location"
	nearestNoticeFormat   = "Nearest station: %s"
)

// Notifier shows a message to the user
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

// Notify calls f(message)
func (f NotifierFunc) Notify(message string) { f(message) }

// LocationGeocoder converts free text to a coordinate pair
type LocationGeocoder interface {
	Forward(ctx context.Context, query string) (*geocoding.Location, error)
}

// Resolver maps a free-text query to a station ID
type Resolver struct {
	geocoder LocationGeocoder
}

// NewResolver creates a resolver that falls back to geocoder
func NewResolver(geocoder LocationGeocoder) *Resolver {
	return &Resolver{geocoder: geocoder}
}

// Resolve returns the ID of the station named query, or failing that the
// station nearest to wherever query geocodes to.
func (r *Resolver) Resolve(ctx context.Context, list []models.Station, query string, notifier Notifier) (string, error) {
	if s, ok := FindByName(list, query); ok {
		return s.ID, nil
	}

	loc, err := r.geocoder.Forward(ctx, query)
	if errors.Is(err, geocoding.ErrNoResults) {
		slog.Info("location did not geocode", "query", query, "error", err)
		notifier.Notify(InvalidLocationNotice)
		return "", fmt.Errorf("%w: %s", ErrInvalidLocation, query)
	}
	if err != nil {
		return "", fmt.Errorf("geocoding %q: %w", query, err)
	}

	nearest, ok := Nearest(list, models.Coordinates{Latitude: loc.Latitude, Longitude: loc.Longitude})
	if !ok {
		return "", fmt.Errorf("%w: directory is empty", ErrStationNotFound)
	}

	notifier.Notify(fmt.Sprintf(nearestNoticeFormat, nearest.DisplayName()))
	return nearest.ID, nil
}

// Nearest returns the station with the smallest squared distance to point.
// The first station wins a tie. ok is false only for an empty list.
func Nearest(list []models.Station, point models.Coordinates) (nearest models.Station, ok bool) {
	best := 0.0
	for i, s := range list {
		d := distanceTo(s, point)
		if i == 0 || d < best {
			nearest, best = s, d
		}
	}
	return nearest, len(list) > 0
}

// SquaredDistance is the squared Euclidean distance in raw degrees.
// No projection is applied.
func SquaredDistance(a, b models.Coordinates) float64 {
	dLat := a.Latitude - b.Latitude
	dLon := a.Longitude - b.Longitude
	return dLat*dLat + dLon*dLon
}

func distanceTo(s models.Station, point models.Coordinates) float64 {
	if s.Position == nil {
		return MissingPositionPenalty
	}
	return SquaredDistance(*s.Position, point)
}
