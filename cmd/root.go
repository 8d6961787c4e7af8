/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfmyers9/bandsintown/internal/config"
	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logFile    string
	logLevel   string
	logMaxSize int

	// logger is configured from the persistent flags before any command runs
	logger = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bandsintown",
	Short: "Bandsintown event listings from the command line",
	Long: `bandsintown looks up artists, events and venues on Bandsintown.

It can also keep a watchlist of artists and check it periodically,
reporting when a followed artist announces new shows.

An application id is required for every API call. Set it with
'bandsintown config set-app-id', in ~/.config/bandsintown/config.yaml,
or through the BANDSINTOWN_APP_ID environment variable.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = setupLogger(logFile, logLevel, logMaxSize)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&logMaxSize, "log-max-size", 10, "Rotate the log file after this many megabytes")
	rootCmd.PersistentFlags().String("app-id", "", "Bandsintown application id (overrides config)")
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string, maxSizeMB int) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	// Set up output
	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		} else {
			output = &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    maxSizeMB,
				MaxBackups: 3,
				MaxAge:     28,
				LocalTime:  true,
			}
		}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// clientLogger adapts a zerolog.Logger to the bandsintown.Logger interface
type clientLogger struct {
	logger zerolog.Logger
}

func (l clientLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// loadClient loads the configuration and creates an API client from it
func loadClient(cmd *cobra.Command) (*config.Config, *bandsintown.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if appID, _ := cmd.Flags().GetString("app-id"); appID != "" {
		cfg.AppID = appID
	}

	client, err := bandsintown.NewClient(bandsintown.Config{
		AppID:   cfg.AppID,
		BaseURL: cfg.BaseURL,
		Logger:  clientLogger{logger: logger.With().Str("component", "api").Logger()},
	})
	if err != nil {
		if errors.Is(err, bandsintown.ErrMissingAppID) {
			return nil, nil, fmt.Errorf("no application id configured. Run 'bandsintown config set-app-id' first")
		}
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return cfg, client, nil
}
