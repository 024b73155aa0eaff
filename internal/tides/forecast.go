package tides

import "github.com/ngmaloney/uk-tide-terminal/internal/models"

// TableRows is the fixed height of the tide table
const TableRows = 28

// Forecast is the set of upcoming events for one station
type Forecast struct {
	Station models.Station
	Events  []models.TideEvent
}

// Row is one line of the tide table. Both fields are empty for padding rows.
type Row struct {
	Type string // "High" or "Low"
	Time string // e.g. "Sun 01 - 10:00" or "???"
}

// Rows renders the forecast as exactly TableRows rows. Events past the last
// row are dropped.
func (f *Forecast) Rows() []Row {
	rows := make([]Row, TableRows)
	for i, event := range f.Events {
		if i == TableRows {
			break
		}
		rows[i] = Row{Type: string(event.Type), Time: event.DisplayTime()}
	}
	return rows
}
