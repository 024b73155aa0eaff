package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/uk-tide-terminal/internal/stations"
	"github.com/ngmaloney/uk-tide-terminal/internal/tides"
)

// Loader builds the session service, fetching the station directory
type Loader func(ctx context.Context) (*tides.Service, error)

// serviceLoadedMsg is sent once the station directory is available
type serviceLoadedMsg struct {
	service *tides.Service
	err     error
}

// forecastMsg is sent when a submitted query has been resolved and fetched
type forecastMsg struct {
	query    string
	forecast *tides.Forecast
	notices  []string
	err      error
}

// loadService fetches the directory in the background
func loadService(load Loader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		service, err := load(ctx)
		return serviceLoadedMsg{service: service, err: err}
	}
}

// submitQuery resolves query and fetches its tides in the background.
// Notices raised along the way travel back with the result.
func submitQuery(service *tides.Service, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var notices []string
		notifier := stations.NotifierFunc(func(message string) {
			notices = append(notices, message)
		})

		forecast, err := service.OnSubmit(ctx, query, notifier)
		return forecastMsg{query: query, forecast: forecast, notices: notices, err: err}
	}
}
