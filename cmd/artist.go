package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"github.com/spf13/cobra"
)

var artistMBID string

// artistCmd represents the artist command
var artistCmd = &cobra.Command{
	Use:   "artist [NAME]",
	Short: "Show an artist and whether they are on tour",
	Long: `Look up an artist on Bandsintown and print their profile URL,
MusicBrainz id and tour status.

When the API does not report an upcoming events count, the artist's
events are loaded to decide whether they are on tour.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArtist,
}

func init() {
	rootCmd.AddCommand(artistCmd)

	artistCmd.Flags().StringVar(&artistMBID, "mbid", "", "MusicBrainz id (used when no name is given)")
}

func runArtist(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, client, err := loadClient(cmd)
	if err != nil {
		return err
	}

	artist, err := client.Artists().Get(ctx, artistRef(args, artistMBID))
	if err != nil {
		return fmt.Errorf("failed to get artist: %w", err)
	}

	onTour, err := artist.OnTour()
	if errors.Is(err, bandsintown.ErrOnTourUnknown) {
		if _, err := client.Artists().Events(ctx, artist); err != nil {
			return fmt.Errorf("failed to get events: %w", err)
		}
		onTour, err = artist.OnTour()
	}
	if err != nil {
		return err
	}

	profile, err := artist.ProfileURL()
	if err != nil {
		return err
	}

	status := "not on tour"
	if onTour {
		upcoming := len(artist.Events)
		if artist.UpcomingEventsCount != nil {
			upcoming = *artist.UpcomingEventsCount
		}
		status = fmt.Sprintf("on tour (%d upcoming events)", upcoming)
	}

	rows := [][]string{
		{"Name", artist.Name},
		{"Profile", profile},
	}
	if artist.MBID != "" {
		rows = append(rows, []string{"MBID", artist.MBID})
	}
	rows = append(rows, []string{"Status", status})

	return writeTable(cmd.OutOrStdout(), 10, rows)
}

// artistRef builds an artist reference from an optional NAME argument
func artistRef(args []string, mbid string) bandsintown.ArtistRef {
	ref := bandsintown.ArtistRef{MBID: mbid}
	if len(args) > 0 {
		ref.Name = args[0]
	}
	return ref
}
