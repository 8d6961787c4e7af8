package bandsintown

import (
	"net/http"
	"strings"
)

// Config holds client configuration.
type Config struct {
	AppID      string       // Required: application id sent with every request
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: Base URL for API (defaults to the Bandsintown API, used for testing)
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Bandsintown API operations.
//
// A Client is safe for concurrent use once created.
type Client struct {
	appID      string
	httpClient *http.Client
	baseURL    string
	logger     Logger

	artists *ArtistService
	events  *EventService
	venues  *VenueService
}

const (
	// DefaultBaseURL is the default Bandsintown API endpoint.
	DefaultBaseURL = "http://api.bandsintown.com"
)

// NewClient creates a new Bandsintown API client.
//
// Returns ErrMissingAppID if cfg.AppID is empty.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" {
		return nil, ErrMissingAppID
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		appID:      cfg.AppID,
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     cfg.Logger,
	}

	c.artists = &ArtistService{client: c}
	c.events = &EventService{client: c}
	c.venues = &VenueService{client: c}

	return c, nil
}

// Artists returns the artist service.
func (c *Client) Artists() *ArtistService {
	return c.artists
}

// Events returns the event service.
func (c *Client) Events() *EventService {
	return c.events
}

// Venues returns the venue service.
func (c *Client) Venues() *VenueService {
	return c.venues
}

// AppID returns the application id sent with every request.
func (c *Client) AppID() string {
	return c.appID
}

// BaseURL returns the API endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
