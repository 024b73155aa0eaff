// Package admiralty talks to the UK Admiralty tidal API
package admiralty

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ngmaloney/uk-tide-terminal/internal/models"
)

const (
	// DefaultBaseURL is the Admiralty UK Tidal API (Discovery tier)
	DefaultBaseURL = "https://admiraltyapi.azure-api.net/uktidalapi/api/V1"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
)

// StationClient defines the interface for fetching the station directory
type StationClient interface {
	// GetStations retrieves every tidal station in directory order
	GetStations(ctx context.Context) ([]models.Station, error)
}

// TideClient defines the interface for fetching tidal events
type TideClient interface {
	// GetTidalEvents retrieves upcoming high/low water events for a station
	GetTidalEvents(ctx context.Context, stationID string) ([]models.TideEvent, error)
}

// Client implements StationClient and TideClient against the Admiralty API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Admiralty client authenticated with apiKey.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default().With("component", "admiralty"),
	}
}

// get issues an authenticated GET and returns the response for a 200 status
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	requestURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(subscriptionKeyHeader, c.apiKey)

	c.logger.Debug("requesting", "url", requestURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d for %s", resp.StatusCode, path)
	}

	return resp, nil
}
