package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jfmyers9/bandsintown/internal/config"
	"github.com/jfmyers9/bandsintown/internal/tracker"
	"github.com/jfmyers9/bandsintown/internal/watchlist"
	"github.com/spf13/cobra"
)

var watchMBID string

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow artists and check them for new tours",
	Long: `Keep a local watchlist of artists and check it against Bandsintown.

Each check records how many upcoming events an artist has. An artist
that had none at the previous check and has some now is reported as
having announced a tour.

The watchlist is stored in watchlist.db inside the data_dir from the
config (default ~/.local/share/bandsintown).`,
}

var watchAddCmd = &cobra.Command{
	Use:   "add [NAME]",
	Short: "Add an artist to the watchlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatchAdd,
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove [NAME]",
	Short: "Remove an artist from the watchlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatchRemove,
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched artists",
	RunE:  runWatchList,
}

var watchCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every watched artist once",
	RunE:  runWatchCheck,
}

var watchRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Check the watchlist every poll_interval until interrupted",
	Long: `Check the watchlist immediately and then every poll_interval seconds
(default 3600). Progress is logged; use --log-level info to see each
check and --log-file to keep a rotated log.

Stop with Ctrl+C.`,
	RunE: runWatchRun,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.AddCommand(watchAddCmd)
	watchCmd.AddCommand(watchRemoveCmd)
	watchCmd.AddCommand(watchListCmd)
	watchCmd.AddCommand(watchCheckCmd)
	watchCmd.AddCommand(watchRunCmd)

	watchAddCmd.Flags().StringVar(&watchMBID, "mbid", "", "MusicBrainz id (used when no name is given)")
	watchRemoveCmd.Flags().StringVar(&watchMBID, "mbid", "", "MusicBrainz id (used when no name is given)")
}

// openWatchlist opens the watchlist database in the configured data directory
func openWatchlist(cfg *config.Config) (*watchlist.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := watchlist.Open(watchlist.Path(cfg.DataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist: %w", err)
	}
	return store, nil
}

func runWatchAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := openWatchlist(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ref := artistRef(args, watchMBID)
	entry, err := store.Add(context.Background(), ref.Name, ref.MBID)
	if err != nil {
		return fmt.Errorf("failed to add artist: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (%s)\n", entryLabel(*entry), entry.Identifier)
	return nil
}

func runWatchRemove(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := openWatchlist(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ref := artistRef(args, watchMBID)
	if err := store.Remove(context.Background(), ref.Name, ref.MBID); err != nil {
		return fmt.Errorf("failed to remove artist: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Removed from watchlist")
	return nil
}

func runWatchList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := openWatchlist(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list watchlist: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Watchlist is empty. Add artists with 'bandsintown watch add NAME'")
		return nil
	}

	now := time.Now()
	rows := [][]string{{"Artist", "Upcoming", "Checked"}}
	for _, e := range entries {
		rows = append(rows, []string{
			entryLabel(e),
			formatUpcoming(e.UpcomingEvents),
			formatLastChecked(e.LastChecked, now),
		})
	}
	return writeTable(cmd.OutOrStdout(), columnWidth(cfg), rows)
}

func runWatchCheck(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	store, err := openWatchlist(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	t := tracker.New(client.Artists(), store, pollInterval(cfg), logger)
	results, err := t.Check(context.Background())
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Watchlist is empty. Add artists with 'bandsintown watch add NAME'")
		return nil
	}

	rows := [][]string{{"Artist", "Upcoming", "Status"}}
	failed := 0
	for _, r := range results {
		status := ""
		switch {
		case r.Err != nil:
			failed++
			status = "error: " + r.Err.Error()
		case r.NewTour:
			status = "NEW TOUR"
		}
		upcoming := "-"
		if r.Err == nil {
			upcoming = strconv.Itoa(len(r.Events))
		}
		rows = append(rows, []string{entryLabel(r.Entry), upcoming, status})
	}

	if err := writeTable(cmd.OutOrStdout(), columnWidth(cfg), rows); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d artists could not be checked", failed, len(results))
	}
	return nil
}

func runWatchRun(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	store, err := openWatchlist(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	t := tracker.New(client.Artists(), store, pollInterval(cfg), logger)
	if err := t.Run(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("tracker error: %w", err)
	}
	return nil
}

func entryLabel(e watchlist.Entry) string {
	if e.Name == "" {
		return "mbid " + e.MBID
	}
	return e.Name
}

func formatUpcoming(upcoming *int) string {
	if upcoming == nil {
		return "?"
	}
	return strconv.Itoa(*upcoming)
}

func pollInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.PollInterval) * time.Second
}
