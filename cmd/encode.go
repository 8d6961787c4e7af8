package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/bandsintown/internal/config"
	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"github.com/spf13/cobra"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode KEY=VALUE...",
	Short: "Print the query string sent for a set of parameters",
	Long: `Print the query string the client would send for the given parameters.

Repeating a key turns it into a list, sent as "key[]" pairs. The
application id comes from the config or --app-id.

Example:
  bandsintown encode artists="Little Brother" artists="Joe Scudda" location="Boston, MA"`,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appID := cfg.AppID
	if flagAppID, _ := cmd.Flags().GetString("app-id"); flagAppID != "" {
		appID = flagAppID
	}

	params, err := parseKeyValues(args)
	if err != nil {
		return err
	}

	query, err := bandsintown.Encode(params, appID)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), query)
	return nil
}

// parseKeyValues builds params from KEY=VALUE arguments. A key given more
// than once becomes a list in argument order.
func parseKeyValues(args []string) (bandsintown.Params, error) {
	params := bandsintown.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected KEY=VALUE", arg)
		}

		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}
	return params, nil
}
