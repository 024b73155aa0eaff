// Package geocoding converts free-text locations to coordinates using a
// positionstack-compatible forward geocoding API
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the positionstack v1 API
const DefaultBaseURL = "http://api.positionstack.com/v1"

// ErrNoResults is returned when the API reports an error payload or finds
// nothing for the query
var ErrNoResults = errors.New("no geocoding results")

// Location represents a geocoded location
type Location struct {
	Latitude  float64
	Longitude float64
	Label     string
}

// Geocoder converts addresses to coordinates
type Geocoder struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGeocoder creates a new geocoder. An empty baseURL selects DefaultBaseURL.
func NewGeocoder(baseURL, accessKey string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Geocoder{
		baseURL:   baseURL,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default().With("component", "geocoding"),
	}
}

// forwardResponse is either {data: [...]} or {error: {...}}
type forwardResponse struct {
	Data  []json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type forwardResult struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Label     string   `json:"label"`
}

// Forward geocodes query and returns the first result
func (g *Geocoder) Forward(ctx context.Context, query string) (*Location, error) {
	params := url.Values{}
	params.Add("access_key", g.accessKey)
	params.Add("query", query)

	reqURL := fmt.Sprintf("%s/forward?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	g.logger.Debug("geocoding", "query", query)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	// Error payloads arrive with 4xx statuses, so decode before checking
	var body forwardResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if decodeErr == nil && body.Error != nil {
		return nil, fmt.Errorf("%w for '%s': %s", ErrNoResults, query, strings.TrimSpace(body.Error.Message))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}

	if len(body.Data) == 0 {
		return nil, fmt.Errorf("%w for '%s'", ErrNoResults, query)
	}

	// positionstack answers an empty search with [[]]
	var first forwardResult
	if err := json.Unmarshal(body.Data[0], &first); err != nil || first.Latitude == nil || first.Longitude == nil {
		return nil, fmt.Errorf("%w for '%s'", ErrNoResults, query)
	}

	return &Location{
		Latitude:  *first.Latitude,
		Longitude: *first.Longitude,
		Label:     first.Label,
	}, nil
}
