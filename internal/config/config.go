package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEventFormat is the template used to print one event per line.
const DefaultEventFormat = `{{.Datetime.Format "2006-01-02 15:04"}}  {{.Venue.Name}}, {{.Venue.City}}`

// Config holds application configuration
type Config struct {
	// Bandsintown application id sent with every request
	AppID string

	// API endpoint (empty means the public Bandsintown API)
	BaseURL string

	// Output format template for event listings
	// Default: DefaultEventFormat
	EventFormat string

	// Fixed column width for table output (0 = no padding)
	OutputWidth int

	// Poll interval for the watch loop (in seconds)
	PollInterval int

	// Directory holding the watchlist database
	// Default: ~/.local/share/bandsintown
	DataDir string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("app_id", "")
	v.SetDefault("base_url", "")
	v.SetDefault("event_format", DefaultEventFormat)
	v.SetDefault("output_width", 30)
	v.SetDefault("poll_interval", 3600)
	v.SetDefault("data_dir", defaultDataDir())

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("BANDSINTOWN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		AppID:        v.GetString("app_id"),
		BaseURL:      v.GetString("base_url"),
		EventFormat:  v.GetString("event_format"),
		OutputWidth:  v.GetInt("output_width"),
		PollInterval: v.GetInt("poll_interval"),
		DataDir:      v.GetString("data_dir"),
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "bandsintown")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "bandsintown")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("app_id", c.AppID)
	v.Set("base_url", c.BaseURL)
	v.Set("event_format", c.EventFormat)
	v.Set("output_width", c.OutputWidth)
	v.Set("poll_interval", c.PollInterval)
	v.Set("data_dir", c.DataDir)

	// Write to file
	return v.WriteConfigAs(configFile)
}
