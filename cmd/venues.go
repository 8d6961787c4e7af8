package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"github.com/spf13/cobra"
)

var (
	venueQuery    string
	venueLocation string
	venueRadius   int
)

// venuesCmd represents the venues command
var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Search venues and list their events",
}

var venuesSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search venues by name",
	Long: `Search venues whose name matches --query, optionally near a location.

Example:
  bandsintown venues search --query "House of Blues" --location "Chicago, IL"`,
	RunE: runVenuesSearch,
}

var venuesEventsCmd = &cobra.Command{
	Use:   "events ID",
	Short: "List the upcoming events at a venue",
	Args:  cobra.ExactArgs(1),
	RunE:  runVenuesEvents,
}

func init() {
	rootCmd.AddCommand(venuesCmd)
	venuesCmd.AddCommand(venuesSearchCmd)
	venuesCmd.AddCommand(venuesEventsCmd)

	venuesSearchCmd.Flags().StringVar(&venueQuery, "query", "", "Venue name to search for")
	venuesSearchCmd.Flags().StringVar(&venueLocation, "location", "", `Location, e.g. "Chicago, IL"`)
	venuesSearchCmd.Flags().IntVar(&venueRadius, "radius", 0, "Search radius in miles around the location")
	_ = venuesSearchCmd.MarkFlagRequired("query")

	venuesEventsCmd.Flags().StringVar(&eventsFormat, "format", "", "Event output template (overrides config)")
}

func runVenuesSearch(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	params := bandsintown.Params{"query": venueQuery}
	if venueLocation != "" {
		params["location"] = venueLocation
	}
	if cmd.Flags().Changed("radius") {
		params["radius"] = venueRadius
	}

	venues, err := client.Venues().Search(context.Background(), params)
	if err != nil {
		return fmt.Errorf("failed to search venues: %w", err)
	}

	if len(venues) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No venues found")
		return nil
	}

	rows := [][]string{{"ID", "Name", "Location"}}
	for _, v := range venues {
		rows = append(rows, []string{
			v.ID,
			v.Name,
			joinNonEmpty(", ", v.City, v.Region, v.Country),
		})
	}
	return writeTable(cmd.OutOrStdout(), columnWidth(cfg), rows)
}

func runVenuesEvents(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	venue := &bandsintown.Venue{ID: args[0]}
	events, err := client.Venues().Events(context.Background(), venue)
	if err != nil {
		return fmt.Errorf("failed to get venue events: %w", err)
	}

	return writeEvents(cmd.OutOrStdout(), events, eventTemplate(cfg.EventFormat))
}
