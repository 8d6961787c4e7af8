package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"github.com/spf13/cobra"
)

var (
	eventsMBID   string
	eventsFormat string

	searchLocation  string
	searchRadius    int
	searchArtists   []string
	searchDate      string
	searchStartDate string
	searchEndDate   string
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events [NAME]",
	Short: "List upcoming events",
	Long: `List the upcoming events of an artist, or search events with one of
the subcommands.

Each event is printed with the event_format template from the config.
Template fields include .Datetime, .Venue (Name, City, Region, Country),
.Lineup, .Where, .TicketURL and .TicketStatus.

Examples:
  bandsintown events "Little Brother"
  bandsintown events search --artist "Little Brother" --location "Boston, MA" --radius 10
  bandsintown events --format '{{.Datetime.Format "Jan 2"}} {{.Where}}' "Pete Rock"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArtistEvents,
}

var eventsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search events by artist, location and date",
	RunE:  runEventsList((*bandsintown.EventService).Search),
}

var eventsRecommendedCmd = &cobra.Command{
	Use:   "recommended",
	Short: "List events recommended for fans of the given artists",
	RunE:  runEventsList((*bandsintown.EventService).Recommended),
}

var eventsOnSaleSoonCmd = &cobra.Command{
	Use:   "on-sale-soon",
	Short: "List events with tickets going on sale soon",
	RunE:  runEventsList((*bandsintown.EventService).OnSaleSoon),
}

var eventsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "List events added or updated in the last day",
	RunE:  runEventsDaily,
}

var eventsCancelCmd = &cobra.Command{
	Use:   "cancel ID",
	Short: "Cancel an event",
	Long: `Cancel an event by id. Only events created by your application id
can be cancelled.`,
	Args: cobra.ExactArgs(1),
	RunE: runEventsCancel,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsSearchCmd)
	eventsCmd.AddCommand(eventsRecommendedCmd)
	eventsCmd.AddCommand(eventsOnSaleSoonCmd)
	eventsCmd.AddCommand(eventsDailyCmd)
	eventsCmd.AddCommand(eventsCancelCmd)

	eventsCmd.PersistentFlags().StringVar(&eventsFormat, "format", "", "Event output template (overrides config)")
	eventsCmd.Flags().StringVar(&eventsMBID, "mbid", "", "MusicBrainz id (used when no name is given)")

	for _, c := range []*cobra.Command{eventsSearchCmd, eventsRecommendedCmd, eventsOnSaleSoonCmd} {
		c.Flags().StringVar(&searchLocation, "location", "", `Location, e.g. "Boston, MA" or "use_geoip"`)
		c.Flags().IntVar(&searchRadius, "radius", 0, "Search radius in miles around the location")
		c.Flags().StringArrayVar(&searchArtists, "artist", nil, "Artist name (repeatable)")
		c.Flags().StringVar(&searchDate, "date", "", `Date (YYYY-MM-DD), "upcoming" or "all"`)
		c.Flags().StringVar(&searchStartDate, "start-date", "", "Start of a date range (YYYY-MM-DD)")
		c.Flags().StringVar(&searchEndDate, "end-date", "", "End of a date range (YYYY-MM-DD)")
	}
}

func runArtistEvents(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	ref := artistRef(args, eventsMBID)
	artist := &bandsintown.Artist{Name: ref.Name, MBID: ref.MBID}
	events, err := client.Artists().Events(ctx, artist)
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	return writeEvents(cmd.OutOrStdout(), events, eventTemplate(cfg.EventFormat))
}

type eventLister func(s *bandsintown.EventService, ctx context.Context, params bandsintown.Params) ([]bandsintown.Event, error)

// runEventsList returns a RunE that calls list with the search flags
func runEventsList(list eventLister) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, client, err := loadClient(cmd)
		if err != nil {
			return err
		}

		events, err := list(client.Events(), context.Background(), searchParams(cmd))
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		return writeEvents(cmd.OutOrStdout(), events, eventTemplate(cfg.EventFormat))
	}
}

func runEventsDaily(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	events, err := client.Events().Daily(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	return writeEvents(cmd.OutOrStdout(), events, eventTemplate(cfg.EventFormat))
}

func runEventsCancel(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	message, err := client.Events().Cancel(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to cancel event: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

// searchParams collects the search flags that were set on cmd
func searchParams(cmd *cobra.Command) bandsintown.Params {
	params := bandsintown.Params{}
	flags := cmd.Flags()

	if searchLocation != "" {
		params["location"] = searchLocation
	}
	if flags.Changed("radius") {
		params["radius"] = searchRadius
	}
	if len(searchArtists) > 0 {
		params["artists"] = searchArtists
	}
	if searchDate != "" {
		params[bandsintown.ParamDate] = searchDate
	}
	if searchStartDate != "" {
		params[bandsintown.ParamStartDate] = searchStartDate
	}
	if searchEndDate != "" {
		params[bandsintown.ParamEndDate] = searchEndDate
	}

	return params
}

// eventTemplate picks the --format flag over the configured format
func eventTemplate(configured string) string {
	if eventsFormat != "" {
		return eventsFormat
	}
	return configured
}
