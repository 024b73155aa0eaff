// Package tides wires the station directory, resolver and tide client into
// the handlers the user interface calls
package tides

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ngmaloney/uk-tide-terminal/internal/admiralty"
	"github.com/ngmaloney/uk-tide-terminal/internal/models"
	"github.com/ngmaloney/uk-tide-terminal/internal/stations"
)

// Service orchestrates station search and tide lookups for one session
type Service struct {
	directory *stations.Directory
	resolver  *stations.Resolver
	tides     admiralty.TideClient
}

// NewService creates a new tide service
func NewService(directory *stations.Directory, resolver *stations.Resolver, tides admiralty.TideClient) *Service {
	return &Service{
		directory: directory,
		resolver:  resolver,
		tides:     tides,
	}
}

// OnTextChanged returns the stations matching the search box contents
func (s *Service) OnTextChanged(ctx context.Context, text string) ([]models.Station, error) {
	list, err := s.directory.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return stations.FilterByPrefix(list, text), nil
}

// StationCount returns the size of the loaded directory, named or not
func (s *Service) StationCount(ctx context.Context) (int, error) {
	return s.directory.Len(ctx)
}

// OnSelect returns the text the search box should show once station is
// picked from the list
func (s *Service) OnSelect(station models.Station) string {
	return station.DisplayName()
}

// OnSubmit resolves text to a station and fetches its tidal events.
// stations.ErrInvalidLocation is returned, without a tide fetch, when text
// is neither a station name nor a place the geocoder knows.
func (s *Service) OnSubmit(ctx context.Context, text string, notifier stations.Notifier) (*Forecast, error) {
	list, err := s.directory.Stations(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.resolver.Resolve(ctx, list, text, notifier)
	if err != nil {
		return nil, err
	}

	station, err := s.directory.StationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := s.tides.GetTidalEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching tides for %s: %w", id, err)
	}

	slog.Info("tides loaded", "station", id, "name", station.DisplayName(), "events", len(events))
	return &Forecast{Station: *station, Events: events}, nil
}
