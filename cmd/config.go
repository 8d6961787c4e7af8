package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/bandsintown/internal/config"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configSetAppIDCmd = &cobra.Command{
	Use:   "set-app-id ID",
	Short: "Save the Bandsintown application id",
	Long: `Save the application id sent with every API request.

The id is written to ~/.config/bandsintown/config.yaml. The
BANDSINTOWN_APP_ID environment variable still takes precedence.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetAppID,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetAppIDCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigSetAppID(cmd *cobra.Command, args []string) error {
	appID := strings.TrimSpace(args[0])
	if appID == "" {
		return fmt.Errorf("application id cannot be empty")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.AppID = appID
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved application id to %s\n",
		filepath.Join(config.GetConfigDir(), "config.yaml"))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "(default)"
	}

	return writeTable(cmd.OutOrStdout(), 14, [][]string{
		{"app_id", cfg.AppID},
		{"base_url", baseURL},
		{"event_format", cfg.EventFormat},
		{"output_width", fmt.Sprint(cfg.OutputWidth)},
		{"poll_interval", fmt.Sprintf("%ds", cfg.PollInterval)},
		{"data_dir", cfg.DataDir},
	})
}
