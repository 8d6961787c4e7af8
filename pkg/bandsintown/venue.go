package bandsintown

import (
	"context"
	"fmt"
	"net/url"
)

// VenueService provides venue operations for the Bandsintown API.
type VenueService struct {
	client *Client
}

const venuesResource = "venues"

// Search returns venues whose name matches the "query" param. Results can
// be narrowed with "location" and "radius".
func (s *VenueService) Search(ctx context.Context, params Params) ([]Venue, error) {
	body, err := s.client.get(ctx, venuesResource, "search", params)
	if err != nil {
		return nil, err
	}

	venues, err := decodeVenues(body)
	if err != nil {
		return nil, fmt.Errorf("bandsintown: failed to parse venues: %w", err)
	}
	return venues, nil
}

// Events returns the upcoming events at a venue.
//
// The result is stored on venue.Events and later calls return it without
// another request.
func (s *VenueService) Events(ctx context.Context, venue *Venue) ([]Event, error) {
	if venue.Events != nil {
		return venue.Events, nil
	}
	if venue.ID == "" {
		return nil, fmt.Errorf("bandsintown: venue id is required")
	}

	body, err := s.client.get(ctx, venuesResource, url.PathEscape(venue.ID)+"/events", nil)
	if err != nil {
		return nil, err
	}

	events, err := decodeEvents(body)
	if err != nil {
		return nil, fmt.Errorf("bandsintown: failed to parse venue events: %w", err)
	}

	venue.Events = events
	return events, nil
}
