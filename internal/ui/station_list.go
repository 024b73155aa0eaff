package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/uk-tide-terminal/internal/models"
)

// stationItem wraps a Station for use in a list
type stationItem struct {
	station models.Station
}

// FilterValue implements list.Item
func (s stationItem) FilterValue() string {
	return s.station.DisplayName()
}

// Title implements list.DefaultItem
func (s stationItem) Title() string {
	return s.station.DisplayName()
}

// Description implements list.DefaultItem
func (s stationItem) Description() string {
	desc := "Station " + s.station.ID
	if p := s.station.Position; p != nil {
		desc += fmt.Sprintf(" • %.3f, %.3f", p.Latitude, p.Longitude)
	}
	return desc
}

func stationItems(matches []models.Station) []list.Item {
	items := make([]list.Item, len(matches))
	for i, s := range matches {
		items[i] = stationItem{station: s}
	}
	return items
}

// createStationList creates the list.Model showing search matches.
// Filtering is ours, so the list's own filter is off.
func createStationList(width, height int) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Stations"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
