package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/ngmaloney/uk-tide-terminal/internal/tides"
)

// createTideTable renders a forecast as a two-column table of
// tides.TableRows rows
func createTideTable(forecast *tides.Forecast, height int) table.Model {
	columns := []table.Column{
		{Title: "High/Low Water", Width: 16},
		{Title: "Time (24h)", Width: 16},
	}

	rows := make([]table.Row, 0, tides.TableRows)
	for _, r := range forecast.Rows() {
		rows = append(rows, table.Row{r.Type, r.Time})
	}

	if height <= 0 || height > tides.TableRows {
		height = tides.TableRows
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(colorPrimary).Bold(true)
	s.Selected = s.Selected.Foreground(colorWarning)
	t.SetStyles(s)

	return t
}
