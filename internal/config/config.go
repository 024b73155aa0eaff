// Package config loads API endpoints and keys
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ngmaloney/uk-tide-terminal/internal/admiralty"
	"github.com/ngmaloney/uk-tide-terminal/internal/geocoding"
	"gopkg.in/ini.v1"
)

// Environment variables holding the secrets. They override the file.
const (
	EnvAPIKey       = "API_KEY"
	EnvGeocodeKey   = "GEOCODE_ACCESS_KEY"
	EnvAdmiraltyURL = "ADMIRALTY_BASE_URL"
	EnvGeocodeURL   = "GEOCODE_BASE_URL"
)

// ErrMissingKey is returned when a required API key is not configured
var ErrMissingKey = errors.New("missing API key")

type AdmiraltySection struct {
	BaseURL string `ini:"base_url"`
	APIKey  string `ini:"api_key"`
}

type GeocodingSection struct {
	BaseURL   string `ini:"base_url"`
	AccessKey string `ini:"access_key"`
}

// Config holds everything needed to reach both APIs
type Config struct {
	Admiralty AdmiraltySection `ini:"admiralty"`
	Geocoding GeocodingSection `ini:"geocoding"`
}

// Load reads the optional INI file at path, applies environment overrides and
// defaults, and checks both keys are present. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			file, err := ini.Load(path)
			if err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
			if err := file.Section("admiralty").MapTo(&cfg.Admiralty); err != nil {
				return nil, fmt.Errorf("parsing [admiralty]: %w", err)
			}
			if err := file.Section("geocoding").MapTo(&cfg.Geocoding); err != nil {
				return nil, fmt.Errorf("parsing [geocoding]: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking config %s: %w", path, err)
		}
	}

	override(&cfg.Admiralty.APIKey, EnvAPIKey)
	override(&cfg.Geocoding.AccessKey, EnvGeocodeKey)
	override(&cfg.Admiralty.BaseURL, EnvAdmiraltyURL)
	override(&cfg.Geocoding.BaseURL, EnvGeocodeURL)

	if cfg.Admiralty.BaseURL == "" {
		cfg.Admiralty.BaseURL = admiralty.DefaultBaseURL
	}
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = geocoding.DefaultBaseURL
	}

	if cfg.Admiralty.APIKey == "" {
		return nil, fmt.Errorf("%w: set %s or [admiralty] api_key", ErrMissingKey, EnvAPIKey)
	}
	if cfg.Geocoding.AccessKey == "" {
		return nil, fmt.Errorf("%w: set %s or [geocoding] access_key", ErrMissingKey, EnvGeocodeKey)
	}

	return cfg, nil
}

func override(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}
