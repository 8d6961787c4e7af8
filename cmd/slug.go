package cmd

import (
	"fmt"

	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"github.com/spf13/cobra"
)

var (
	slugMBID string
	slugURL  bool
)

// slugCmd represents the slug command
var slugCmd = &cobra.Command{
	Use:   "slug [NAME]",
	Short: "Print the URL identifier of an artist",
	Long: `Print the identifier Bandsintown uses for an artist in URLs.

The name is camel-cased when it has more than one word, '&' and '+'
are spelled out, and reserved characters are escaped twice. When the
name is empty the MusicBrainz id given with --mbid is used instead.

Examples:
  bandsintown slug "AC/DC"                   # AC%252FDC
  bandsintown slug --mbid 1d8e1d9a-...       # mbid_1d8e1d9a-...
  bandsintown slug --url "Little Brother"    # http://www.bandsintown.com/LittleBrother

No application id is needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSlug,
}

func init() {
	rootCmd.AddCommand(slugCmd)

	slugCmd.Flags().StringVar(&slugMBID, "mbid", "", "MusicBrainz id used when the name is empty")
	slugCmd.Flags().BoolVar(&slugURL, "url", false, "Print the full profile URL")
}

func runSlug(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}

	generate := bandsintown.GenerateIdentifier
	if slugURL {
		generate = bandsintown.ProfileURL
	}

	out, err := generate(name, slugMBID)
	if err != nil {
		return fmt.Errorf("failed to generate identifier: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
