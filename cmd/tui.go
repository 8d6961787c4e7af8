package cmd

import (
	"context"

	"github.com/jfmyers9/bandsintown/internal/tracker"
	"github.com/jfmyers9/bandsintown/internal/tui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Display the watchlist in an interactive terminal UI",
	Long: `Display the watchlist in an interactive terminal interface.

The watchlist is checked on start and then every poll_interval. Each
artist is shown with their number of upcoming events, the next show,
and whether they just announced a tour.

Keys:
  r  check the watchlist now
  q  quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	store, err := openWatchlist(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Console logs would draw over the UI
	tuiLogger := logger
	if logFile == "" {
		tuiLogger = zerolog.Nop()
	}

	t := tracker.New(client.Artists(), store, pollInterval(cfg), tuiLogger)
	return tui.New(t).Run(context.Background())
}
