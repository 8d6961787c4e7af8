package bandsintown

import (
	"encoding/json"
	"fmt"
	"time"
)

// DatetimeLayout is the layout of event datetimes sent and received by the API.
const DatetimeLayout = "2006-01-02T15:04:05"

// Artist represents a performer listed on Bandsintown.
type Artist struct {
	Name string // Display name
	URL  string // Profile URL reported by the API (empty when not loaded)
	MBID string // MusicBrainz id

	// UpcomingEventsCount is nil when the API has not reported it.
	UpcomingEventsCount *int

	// Events holds upcoming events once loaded through ArtistService.Events.
	Events []Event
}

// APIName returns the identifier used to address the artist in API paths.
func (a *Artist) APIName() (string, error) {
	return GenerateIdentifier(a.Name, a.MBID)
}

// ProfileURL returns the artist's public bandsintown.com page. The URL
// reported by the API wins over the generated one.
func (a *Artist) ProfileURL() (string, error) {
	if a.URL != "" {
		return a.URL, nil
	}
	return ProfileURL(a.Name, a.MBID)
}

// Ref returns the name/mbid pair identifying the artist.
func (a *Artist) Ref() ArtistRef {
	return ArtistRef{Name: a.Name, MBID: a.MBID}
}

// OnTour reports whether the artist has upcoming events.
//
// The upcoming events count is used when known, otherwise the loaded event
// list. ErrOnTourUnknown is returned when neither is available.
func (a *Artist) OnTour() (bool, error) {
	if a.UpcomingEventsCount != nil {
		return *a.UpcomingEventsCount > 0, nil
	}
	if a.Events != nil {
		return len(a.Events) > 0, nil
	}
	return false, ErrOnTourUnknown
}

// Event represents a single concert.
type Event struct {
	ID             string
	URL            string
	Datetime       time.Time
	TicketURL      string
	Artists        []Artist
	Venue          *Venue
	Status         string
	TicketStatus   string
	OnSaleDatetime *time.Time // nil when the API does not report it
}

// TicketsAvailable reports whether tickets are on sale.
func (e *Event) TicketsAvailable() bool {
	return e.TicketStatus == "available"
}

// Venue represents a place where events happen.
type Venue struct {
	ID         string
	URL        string
	Name       string
	Address    string
	City       string
	Region     string
	PostalCode string
	Country    string
	Latitude   float64
	Longitude  float64

	// Events holds upcoming events once loaded through VenueService.Events.
	Events []Event
}

// flexString accepts either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// artistJSON, eventJSON and venueJSON mirror the documented response
// fields. Fields not listed here are dropped by the decoder.
type artistJSON struct {
	Name                string  `json:"name"`
	URL                 string  `json:"url"`
	MBID                *string `json:"mbid"`
	UpcomingEventsCount *int    `json:"upcoming_events_count"`
}

type venueJSON struct {
	ID         flexString `json:"id"`
	URL        string     `json:"url"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	Region     string     `json:"region"`
	PostalCode string     `json:"postalcode"`
	Country    string     `json:"country"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
}

type eventJSON struct {
	ID             flexString   `json:"id"`
	URL            string       `json:"url"`
	Datetime       string       `json:"datetime"`
	TicketURL      string       `json:"ticket_url"`
	Artists        []artistJSON `json:"artists"`
	Venue          *venueJSON   `json:"venue"`
	Status         string       `json:"status"`
	TicketStatus   string       `json:"ticket_status"`
	OnSaleDatetime *string      `json:"on_sale_datetime"`
}

func (a artistJSON) toArtist() Artist {
	artist := Artist{
		Name:                a.Name,
		URL:                 a.URL,
		UpcomingEventsCount: a.UpcomingEventsCount,
	}
	if a.MBID != nil {
		artist.MBID = *a.MBID
	}
	return artist
}

func (v venueJSON) toVenue() Venue {
	return Venue{
		ID:         string(v.ID),
		URL:        v.URL,
		Name:       v.Name,
		Address:    v.Address,
		City:       v.City,
		Region:     v.Region,
		PostalCode: v.PostalCode,
		Country:    v.Country,
		Latitude:   v.Latitude,
		Longitude:  v.Longitude,
	}
}

func (e eventJSON) toEvent() (Event, error) {
	event := Event{
		ID:           string(e.ID),
		URL:          e.URL,
		TicketURL:    e.TicketURL,
		Status:       e.Status,
		TicketStatus: e.TicketStatus,
	}

	if e.Datetime != "" {
		t, err := time.Parse(DatetimeLayout, e.Datetime)
		if err != nil {
			return Event{}, fmt.Errorf("invalid datetime %q: %w", e.Datetime, err)
		}
		event.Datetime = t
	}

	if e.OnSaleDatetime != nil && *e.OnSaleDatetime != "" {
		t, err := time.Parse(DatetimeLayout, *e.OnSaleDatetime)
		if err != nil {
			return Event{}, fmt.Errorf("invalid on_sale_datetime %q: %w", *e.OnSaleDatetime, err)
		}
		event.OnSaleDatetime = &t
	}

	for _, a := range e.Artists {
		event.Artists = append(event.Artists, a.toArtist())
	}

	if e.Venue != nil {
		venue := e.Venue.toVenue()
		event.Venue = &venue
	}

	return event, nil
}

// decodeArtist parses a single artist object.
func decodeArtist(body []byte) (*Artist, error) {
	var raw artistJSON
	if err := decodeJSON(body, &raw); err != nil {
		return nil, err
	}
	artist := raw.toArtist()
	return &artist, nil
}

// decodeEvent parses a single event object.
func decodeEvent(data []byte) (*Event, error) {
	var raw eventJSON
	if err := decodeJSON(data, &raw); err != nil {
		return nil, err
	}
	event, err := raw.toEvent()
	if err != nil {
		return nil, &MalformedResponseError{Content: data, Err: err}
	}
	return &event, nil
}

// decodeEvents parses an array of events. The result is never nil.
func decodeEvents(body []byte) ([]Event, error) {
	var raw []eventJSON
	if err := decodeJSON(body, &raw); err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(raw))
	for _, r := range raw {
		event, err := r.toEvent()
		if err != nil {
			return nil, &MalformedResponseError{Content: body, Err: err}
		}
		events = append(events, event)
	}
	return events, nil
}

// decodeVenues parses an array of venues. The result is never nil.
func decodeVenues(body []byte) ([]Venue, error) {
	var raw []venueJSON
	if err := decodeJSON(body, &raw); err != nil {
		return nil, err
	}
	venues := make([]Venue, 0, len(raw))
	for _, r := range raw {
		venues = append(venues, r.toVenue())
	}
	return venues, nil
}
