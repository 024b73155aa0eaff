package admiralty

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ngmaloney/uk-tide-terminal/internal/models"
)

// eventTimeLayout is the Admiralty DateTime without its fractional seconds
const eventTimeLayout = "2006-01-02T15:04:05"

// tidalEvent is a single entry of the /TidalEvents array
type tidalEvent struct {
	EventType json.RawMessage `json:"EventType"`
	DateTime  json.RawMessage `json:"DateTime"`
}

// GetTidalEvents retrieves upcoming tidal events for a station
func (c *Client) GetTidalEvents(ctx context.Context, stationID string) ([]models.TideEvent, error) {
	path := fmt.Sprintf("/Stations/%s/TidalEvents", url.PathEscape(stationID))

	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode tidal events: %w", err)
	}

	events := make([]models.TideEvent, 0, len(raw))
	for i, r := range raw {
		event, ok := parseTidalEvent(r)
		if !ok {
			c.logger.Debug("skipping tidal event", "station", stationID, "index", i)
			continue
		}
		events = append(events, event)
	}

	c.logger.Debug("fetched tidal events", "station", stationID, "events", len(events))
	return events, nil
}

// parseTidalEvent converts one array entry. A badly typed EventType reads as
// low water and a badly typed DateTime as unknown; ok is false only when the
// entry is not an object at all.
func parseTidalEvent(raw json.RawMessage) (models.TideEvent, bool) {
	var r tidalEvent
	if isNull(raw) || json.Unmarshal(raw, &r) != nil {
		return models.TideEvent{}, false
	}

	eventType, _ := rawString(r.EventType)
	event := models.TideEvent{Type: models.TideTypeFromEvent(eventType)}

	if s, ok := rawString(r.DateTime); ok {
		if t, ok := parseEventTime(s); ok {
			event.Time = t
			event.Known = true
		}
	}
	return event, true
}

// parseEventTime drops any sub-second fraction and parses the remainder.
// The API sends UTC without a zone designator.
func parseEventTime(s string) (time.Time, bool) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "Z")
	t, err := time.Parse(eventTimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
