package admiralty

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ngmaloney/uk-tide-terminal/internal/models"
)

// stationsResponse is the GeoJSON feature collection returned by /Stations.
// Features stay raw until parseFeature looks at them.
type stationsResponse struct {
	Features []json.RawMessage `json:"features"`
}

type feature struct {
	Properties json.RawMessage `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

type featureProperties struct {
	ID   json.RawMessage `json:"Id"`
	Name json.RawMessage `json:"Name"`
}

type featureGeometry struct {
	Coordinates json.RawMessage `json:"coordinates"` // [lon, lat]
}

// GetStations retrieves the full station directory
func (c *Client) GetStations(ctx context.Context) ([]models.Station, error) {
	resp, err := c.get(ctx, "/Stations")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body stationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}

	stations := make([]models.Station, 0, len(body.Features))
	for i, raw := range body.Features {
		s, ok := parseFeature(raw)
		if !ok {
			c.logger.Debug("skipping station feature", "index", i)
			continue
		}
		stations = append(stations, s)
	}

	c.logger.Debug("fetched station directory", "stations", len(stations))
	return stations, nil
}

// parseFeature builds a Station from one feature. ok is false when there is
// no string Id to key on; a bad name or geometry only clears that field.
func parseFeature(raw json.RawMessage) (models.Station, bool) {
	var f feature
	if err := json.Unmarshal(raw, &f); err != nil {
		return models.Station{}, false
	}

	var props featureProperties
	if isNull(f.Properties) || json.Unmarshal(f.Properties, &props) != nil {
		return models.Station{}, false
	}

	id, ok := rawString(props.ID)
	if !ok || id == "" {
		return models.Station{}, false
	}

	s := models.Station{ID: id}
	if name, ok := rawString(props.Name); ok {
		s.Name = &name
	}

	var geom featureGeometry
	if !isNull(f.Geometry) && json.Unmarshal(f.Geometry, &geom) == nil {
		s.Position = parsePosition(geom.Coordinates)
	}
	return s, true
}

// parsePosition reads a GeoJSON [lon, lat] pair, returning nil if it is
// not an array, is short, or is not numeric
func parsePosition(raw json.RawMessage) *models.Coordinates {
	var pair []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &pair) != nil || len(pair) < 2 {
		return nil
	}
	lon, ok := rawFloat(pair[0])
	if !ok {
		return nil
	}
	lat, ok := rawFloat(pair[1])
	if !ok {
		return nil
	}
	return &models.Coordinates{Latitude: lat, Longitude: lon}
}
