package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/uk-tide-terminal/internal/models"
	"github.com/ngmaloney/uk-tide-terminal/internal/stations"
	"github.com/ngmaloney/uk-tide-terminal/internal/tides"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading   AppState = iota // Fetching the station directory
	StateSearch                    // Typing a station name or place
	StateResolving                 // Resolving the query and fetching tides
	StateTides                     // Showing the tide table
	StateError                     // Error state
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	// Search
	searchInput textinput.Model
	stationList list.Model
	matches       []models.Station
	totalStations int
	searchQuery   string // Last submitted query

	// Data
	load     Loader
	service  *tides.Service
	forecast *tides.Forecast
	table    table.Model

	// Modal notices, oldest first
	notices []string

	spinner      spinner.Model
	initialQuery string
}

// NewModel creates a new application model. A non-empty initialQuery is
// submitted as soon as the directory has loaded.
func NewModel(load Loader, initialQuery string) Model {
	ti := textinput.New()
	ti.Placeholder = "Station name or place (e.g. Dover or Brighton)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 44

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:        StateLoading,
		searchInput:  ti,
		stationList:  createStationList(50, 14),
		load:         load,
		spinner:      s,
		initialQuery: initialQuery,
	}
}

// Init starts loading the station directory
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadService(m.load), textinput.Blink)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.stationList.SetSize(min(msg.Width-4, 60), max(msg.Height-12, 4))
		if m.forecast != nil {
			m.table.SetHeight(m.tableHeight())
		}
		return m, nil

	case serviceLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading stations failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		total, err := msg.service.StationCount(context.Background())
		if err != nil {
			m.err = fmt.Errorf("loading stations failed: %w", err)
			m.state = StateError
			return m, nil
		}
		m.service = msg.service
		m.totalStations = total
		m.state = StateSearch
		m = m.refreshMatches()
		if m.initialQuery != "" {
			query := m.initialQuery
			m.initialQuery = ""
			m.searchInput.SetValue(query)
			m = m.refreshMatches()
			return m.submit(query)
		}
		return m, textinput.Blink

	case forecastMsg:
		m.notices = append(m.notices, msg.notices...)
		if errors.Is(msg.err, stations.ErrInvalidLocation) {
			// The notice already told the user; let them try again
			m.state = StateSearch
			m.searchInput.Focus()
			return m, textinput.Blink
		}
		if msg.err != nil {
			slog.Error("tide lookup failed", "query", msg.query, "error", msg.err)
			m.err = fmt.Errorf("looking up '%s' failed: %w", msg.query, msg.err)
			m.state = StateError
			return m, nil
		}
		m.forecast = msg.forecast
		m.table = createTideTable(msg.forecast, m.tableHeight())
		m.state = StateTides
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// An open notice swallows the next key
		if len(m.notices) > 0 {
			m.notices = m.notices[1:]
			return m, nil
		}

		switch m.state {
		case StateSearch:
			return m.handleSearchInput(keyMsg)

		case StateTides:
			return m.handleTides(keyMsg)

		case StateError:
			// Any key returns to search, or quits if nothing loaded
			if m.service == nil {
				return m, tea.Quit
			}
			m.state = StateSearch
			m.err = nil
			m.searchInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateLoading, StateResolving:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyEnter:
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		return m.submit(query)

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		m.stationList, cmd = m.stationList.Update(msg)
		return m, cmd

	case tea.KeyTab:
		// Copy the highlighted station into the search box
		if item, ok := m.stationList.SelectedItem().(stationItem); ok {
			m.searchInput.SetValue(m.service.OnSelect(item.station))
			m.searchInput.CursorEnd()
			m = m.refreshMatches()
		}
		return m, nil

	case tea.KeyEsc:
		return m, tea.Quit
	}

	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m = m.refreshMatches()
	}
	return m, cmd
}

// handleTides handles keyboard input while the tide table is shown
func (m Model) handleTides(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "s", "esc":
		m.state = StateSearch
		m.forecast = nil
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// submit starts resolving query
func (m Model) submit(query string) (tea.Model, tea.Cmd) {
	m.searchQuery = query
	m.err = nil
	m.state = StateResolving
	return m, tea.Batch(m.spinner.Tick, submitQuery(m.service, query))
}

// refreshMatches re-runs the name filter for the current search text
func (m Model) refreshMatches() Model {
	matches, err := m.service.OnTextChanged(context.Background(), m.searchInput.Value())
	if err != nil {
		m.err = fmt.Errorf("filtering stations: %w", err)
		m.state = StateError
		return m
	}
	m.matches = matches
	m.stationList.SetItems(stationItems(matches))
	m.stationList.ResetSelected()
	return m
}

func (m Model) tableHeight() int {
	if m.height == 0 {
		return tides.TableRows
	}
	return max(m.height-10, 4)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.state {
	case StateLoading:
		body = fmt.Sprintf("%s Fetching UK tidal stations...", m.spinner.View())
	case StateSearch:
		body = m.viewSearch()
	case StateResolving:
		body = fmt.Sprintf("%s Finding tides for %s...", m.spinner.View(), m.searchQuery)
	case StateTides:
		body = m.viewTides()
	case StateError:
		body = m.viewError()
	}

	if len(m.notices) > 0 {
		notice := noticeStyle.Render(m.notices[0])
		hint := mutedStyle.Render("Press any key to continue")
		return lipgloss.JoinVertical(lipgloss.Left, notice, hint, "", body)
	}
	return body
}

// viewSearch renders the search box and the live station list
func (m Model) viewSearch() string {
	title := titleStyle.Render("⚓ UK Tide Terminal")
	subtitle := mutedStyle.Render(fmt.Sprintf("%d of %d stations match", len(m.matches), m.totalStations))

	searchBox := searchBoxStyle.Render(m.searchInput.View())

	help := helpStyle.Render("Enter: Submit • ↑/↓: Browse • Tab: Use highlighted station • Esc: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		searchBox,
		m.stationList.View(),
		help,
	)
}

// viewTides renders the tide table for the chosen station
func (m Model) viewTides() string {
	if m.forecast == nil {
		return "No station selected"
	}

	header := titleStyle.Render(fmt.Sprintf("⚓ %s (%s)", m.forecast.Station.DisplayName(), m.forecast.Station.ID))
	subtitle := mutedStyle.Render(fmt.Sprintf("Searched for %s", m.searchQuery))

	help := helpStyle.Render("↑/↓: Scroll • S/Esc: New search • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		subtitle,
		"",
		tableBoxStyle.Render(m.table.View()),
		help,
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to return to search • Ctrl+C: Quit")
	if m.service == nil {
		help = helpStyle.Render("Press any key to quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}
