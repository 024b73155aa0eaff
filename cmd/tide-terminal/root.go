package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/uk-tide-terminal/internal/admiralty"
	"github.com/ngmaloney/uk-tide-terminal/internal/config"
	"github.com/ngmaloney/uk-tide-terminal/internal/geocoding"
	"github.com/ngmaloney/uk-tide-terminal/internal/stations"
	"github.com/ngmaloney/uk-tide-terminal/internal/tides"
	"github.com/ngmaloney/uk-tide-terminal/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logPath    string
	debug      bool
	location   string

	cfg     *config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:     "tide-terminal",
	Short:   "UK tide times in the terminal",
	Version: fmt.Sprintf("%s (%s)", BuildVersion, BuildCommit),
	Long: `Search UK tidal stations by name, or by the nearest station to any place,
and show the upcoming high and low water times from the Admiralty tidal API.

Requires API_KEY (Admiralty subscription key) and GEOCODE_ACCESS_KEY
(positionstack access key), either in the environment or the config file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(logPath, debug); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(configPath)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		load := func(ctx context.Context) (*tides.Service, error) {
			return newService(ctx, cfg)
		}

		p := tea.NewProgram(ui.NewModel(load, location), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running application: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "INI file with [admiralty] and [geocoding] settings")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", filepath.Join(os.TempDir(), "tide-terminal.log"), "Where to write logs")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&location, "location", "", "Station name or place to look up on start (e.g. Dover)")

	rootCmd.AddCommand(stationsCmd, tidesCmd)
}

// newService fetches the session directory and wires the lookup service
func newService(ctx context.Context, cfg *config.Config) (*tides.Service, error) {
	client := admiralty.NewClient(cfg.Admiralty.BaseURL, cfg.Admiralty.APIKey)

	directory, err := stations.Shared(ctx, client)
	if err != nil {
		return nil, err
	}

	geocoder := geocoding.NewGeocoder(cfg.Geocoding.BaseURL, cfg.Geocoding.AccessKey)
	return tides.NewService(directory, stations.NewResolver(geocoder), client), nil
}

// setupLogging sends slog output to path; the terminal belongs to the UI
func setupLogging(path string, debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logFile = f

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tide-terminal", "config.ini")
}
