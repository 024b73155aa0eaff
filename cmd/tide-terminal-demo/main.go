package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/uk-tide-terminal/internal/geocoding"
	"github.com/ngmaloney/uk-tide-terminal/internal/models"
	"github.com/ngmaloney/uk-tide-terminal/internal/stations"
	"github.com/ngmaloney/uk-tide-terminal/internal/tides"
	"github.com/ngmaloney/uk-tide-terminal/internal/ui"
)

// This demo shows the UI with mock data and needs no API keys
func main() {
	load := func(ctx context.Context) (*tides.Service, error) {
		dir, err := stations.NewDirectory(ctx, mockStations())
		if err != nil {
			return nil, err
		}
		return tides.NewService(dir, stations.NewResolver(mockGeocoder{}), mockTides{}), nil
	}

	p := tea.NewProgram(ui.NewModel(load, ""), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}

func mockStations() []models.Station {
	return []models.Station{
		models.NewStation("0001", "Port Ellen", 55.627, -6.190),
		models.NewStation("0014", "Plymouth (Devonport)", 50.368, -4.185),
		models.NewStation("0065", "Portsmouth", 50.802, -1.111),
		models.NewStation("0089", "Dover", 51.114, 1.323),
		models.NewStation("0113", "London Bridge (Tower Pier)", 51.507, -0.077),
		models.NewStation("0235", "Aberdeen", 57.144, -2.080),
		models.NewStation("0418", "Liverpool (Gladstone Dock)", 53.450, -3.017),
	}
}

// mockGeocoder knows a handful of towns
type mockGeocoder struct{}

func (mockGeocoder) Forward(ctx context.Context, query string) (*geocoding.Location, error) {
	places := map[string]geocoding.Location{
		"brighton":  {Latitude: 50.822, Longitude: -0.137, Label: "Brighton"},
		"edinburgh": {Latitude: 55.953, Longitude: -3.188, Label: "Edinburgh"},
		"bristol":   {Latitude: 51.454, Longitude: -2.588, Label: "Bristol"},
	}
	loc, ok := places[strings.ToLower(strings.TrimSpace(query))]
	if !ok {
		return nil, fmt.Errorf("%w for '%s'", geocoding.ErrNoResults, query)
	}
	return &loc, nil
}

// mockTides alternates high and low water roughly every six hours
type mockTides struct{}

func (mockTides) GetTidalEvents(ctx context.Context, stationID string) ([]models.TideEvent, error) {
	start := time.Now().Truncate(time.Hour)
	events := make([]models.TideEvent, 0, 28)
	for i := 0; i < 28; i++ {
		event := models.TideEvent{
			Type:  models.TideLow,
			Time:  start.Add(time.Duration(i)*6*time.Hour + 12*time.Minute),
			Known: i != 5, // one event with no usable time
		}
		if i%2 == 0 {
			event.Type = models.TideHigh
		}
		events = append(events, event)
	}
	return events, nil
}
