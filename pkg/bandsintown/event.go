package bandsintown

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// EventService provides event operations for the Bandsintown API.
type EventService struct {
	client *Client
}

const eventsResource = "events"

// EventOptions holds the fields sent when creating an event.
type EventOptions struct {
	Artists        []ArtistRef  // Required: performing artists
	Datetime       time.Time    // Required: local start time of the event
	Venue          VenueOptions // Required: an existing venue id or a new location
	OnSaleDatetime *time.Time   // Optional
	TicketURL      string       // Optional
	TicketPrice    float64      // Optional
}

// VenueOptions identifies the venue of a new event. When ID is set the
// location fields are ignored.
type VenueOptions struct {
	ID         string
	Name       string
	Address    string
	City       string
	Region     string
	PostalCode string
	Country    string
	Latitude   float64
	Longitude  float64
}

// CreateEventResult is the outcome of EventService.Create.
//
// Trusted applications get the stored event back in Event. Everyone else
// gets a confirmation Message and the event goes through moderation.
type CreateEventResult struct {
	Message string
	Event   *Event
}

// Search returns events matching params.
//
// Supported params include "artists" ([]string), "location" ("City, ST",
// "lat,long" or "use_geoip"), "radius", "date" and the
// "start_date"/"end_date" pair, "page" and "per_page".
//
// Example:
//
//	events, err := client.Events().Search(ctx, bandsintown.Params{
//	    "artists":  []string{"Little Brother", "Joe Scudda"},
//	    "location": "Boston, MA",
//	    "radius":   10,
//	})
func (s *EventService) Search(ctx context.Context, params Params) ([]Event, error) {
	return s.list(ctx, "search", params)
}

// Recommended returns events recommended for fans of the given artists.
// Accepts the same params as Search plus "only_recs".
func (s *EventService) Recommended(ctx context.Context, params Params) ([]Event, error) {
	return s.list(ctx, "recommended", params)
}

// Daily returns events added or updated in the last day.
func (s *EventService) Daily(ctx context.Context) ([]Event, error) {
	return s.list(ctx, "daily", nil)
}

// OnSaleSoon returns events whose tickets go on sale within the next week.
func (s *EventService) OnSaleSoon(ctx context.Context, params Params) ([]Event, error) {
	return s.list(ctx, "on_sale_soon", params)
}

func (s *EventService) list(ctx context.Context, method string, params Params) ([]Event, error) {
	body, err := s.client.get(ctx, eventsResource, method, params)
	if err != nil {
		return nil, err
	}

	events, err := decodeEvents(body)
	if err != nil {
		return nil, fmt.Errorf("bandsintown: failed to parse %s events: %w", method, err)
	}
	return events, nil
}

// Create submits a new event.
func (s *EventService) Create(ctx context.Context, opts EventOptions) (*CreateEventResult, error) {
	payload := map[string]map[string]interface{}{"event": eventPayload(opts)}

	body, err := s.client.post(ctx, eventsResource, "", payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message string          `json:"message"`
		Event   json.RawMessage `json:"event"`
	}
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}

	result := &CreateEventResult{Message: resp.Message}
	if len(resp.Event) > 0 && string(resp.Event) != "null" {
		event, err := decodeEvent(resp.Event)
		if err != nil {
			return nil, fmt.Errorf("bandsintown: failed to parse created event: %w", err)
		}
		result.Event = event
	}
	return result, nil
}

// Cancel asks Bandsintown to cancel an event and returns the confirmation
// message. ErrMissingEventID is returned when eventID is empty.
func (s *EventService) Cancel(ctx context.Context, eventID string) (string, error) {
	if eventID == "" {
		return "", ErrMissingEventID
	}

	body, err := s.client.post(ctx, eventsResource, url.PathEscape(eventID)+"/cancel", nil)
	if err != nil {
		return "", err
	}

	return decodeMessage(body)
}

// eventPayload builds the body of an event creation request.
func eventPayload(opts EventOptions) map[string]interface{} {
	event := map[string]interface{}{
		"artists":  parseArtists(opts.Artists),
		"datetime": parseDatetime(opts.Datetime),
		"venue":    parseVenue(opts.Venue),
	}
	if opts.OnSaleDatetime != nil {
		event["on_sale_datetime"] = parseDatetime(*opts.OnSaleDatetime)
	}
	if opts.TicketURL != "" {
		event["ticket_url"] = opts.TicketURL
	}
	if opts.TicketPrice > 0 {
		event["ticket_price"] = opts.TicketPrice
	}
	return event
}

// parseArtists refers to each artist by name, or by mbid when no name is
// given.
func parseArtists(refs []ArtistRef) []map[string]string {
	artists := make([]map[string]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Name == "" && ref.MBID != "" {
			artists = append(artists, map[string]string{"mbid": ref.MBID})
			continue
		}
		artists = append(artists, map[string]string{"name": ref.Name})
	}
	return artists
}

func parseDatetime(t time.Time) string {
	return t.Format(DatetimeLayout)
}

// parseVenue refers to an existing venue by id, or describes a new one.
func parseVenue(v VenueOptions) map[string]interface{} {
	if v.ID != "" {
		return map[string]interface{}{"id": v.ID}
	}
	return map[string]interface{}{
		"name":       v.Name,
		"address":    v.Address,
		"city":       v.City,
		"region":     v.Region,
		"postalcode": v.PostalCode,
		"country":    v.Country,
		"latitude":   v.Latitude,
		"longitude":  v.Longitude,
	}
}
