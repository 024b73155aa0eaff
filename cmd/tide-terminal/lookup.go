package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ngmaloney/uk-tide-terminal/internal/models"
	"github.com/ngmaloney/uk-tide-terminal/internal/stations"
	"github.com/ngmaloney/uk-tide-terminal/internal/tides"
	"github.com/spf13/cobra"
)

var stationsCmd = &cobra.Command{
	Use:   "stations [prefix]",
	Short: "List stations whose name starts with prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newService(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		matches, err := service.OnTextChanged(cmd.Context(), prefix)
		if err != nil {
			return err
		}
		return printStations(cmd.OutOrStdout(), matches)
	},
}

var tidesCmd = &cobra.Command{
	Use:   "tides <station or place>",
	Short: "Print upcoming high and low water for a station or the one nearest a place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newService(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		notifier := stations.NotifierFunc(func(message string) {
			fmt.Fprintln(cmd.ErrOrStderr(), message)
		})

		forecast, err := service.OnSubmit(cmd.Context(), strings.Join(args, " "), notifier)
		if errors.Is(err, stations.ErrInvalidLocation) {
			return errors.New("no tide station found for that location")
		}
		if err != nil {
			return err
		}
		return printForecast(cmd.OutOrStdout(), forecast)
	},
}

func printStations(w io.Writer, matches []models.Station) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, s := range matches {
		fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.DisplayName())
	}
	return tw.Flush()
}

func printForecast(w io.Writer, forecast *tides.Forecast) error {
	fmt.Fprintf(w, "%s (%s)\n\n", forecast.Station.DisplayName(), forecast.Station.ID)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "High/Low Water\tTime (24h)")
	for _, r := range forecast.Rows() {
		fmt.Fprintf(tw, "%s\t%s\n", r.Type, r.Time)
	}
	return tw.Flush()
}
