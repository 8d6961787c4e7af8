package bandsintown

import (
	"context"
	"fmt"
	"net/url"
)

// ArtistService provides artist operations for the Bandsintown API.
type ArtistService struct {
	client *Client
}

const artistsResource = "artists"

// ArtistRef identifies an artist by name, or by MusicBrainz id when the
// name is empty.
type ArtistRef struct {
	Name string
	MBID string
}

// APIName returns the identifier used to address the artist in API paths.
func (r ArtistRef) APIName() (string, error) {
	return GenerateIdentifier(r.Name, r.MBID)
}

// ArtistOptions holds the fields sent when creating an artist.
type ArtistOptions struct {
	Name       string `json:"name"`                  // Required
	MBID       string `json:"mbid,omitempty"`        // Optional: MusicBrainz id
	MyspaceURL string `json:"myspace_url,omitempty"` // Optional
	Website    string `json:"website,omitempty"`     // Optional
}

// Get fetches an artist by name or MusicBrainz id.
//
// Example:
//
//	artist, err := client.Artists().Get(ctx, bandsintown.ArtistRef{Name: "Pete Rock"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(artist.Name, *artist.UpcomingEventsCount)
func (s *ArtistService) Get(ctx context.Context, ref ArtistRef) (*Artist, error) {
	apiName, err := ref.APIName()
	if err != nil {
		return nil, err
	}

	body, err := s.client.get(ctx, artistsResource, apiName, nil)
	if err != nil {
		return nil, err
	}

	artist, err := decodeArtist(body)
	if err != nil {
		return nil, fmt.Errorf("bandsintown: failed to parse artist: %w", err)
	}

	// Keep the caller's reference when the API omits it.
	if artist.Name == "" {
		artist.Name = ref.Name
	}
	if artist.MBID == "" {
		artist.MBID = ref.MBID
	}

	return artist, nil
}

// Events returns the artist's upcoming events.
//
// The result is stored on artist.Events and later calls return it without
// another request. Set artist.Events to nil to force a reload.
func (s *ArtistService) Events(ctx context.Context, artist *Artist) ([]Event, error) {
	if artist.Events != nil {
		return artist.Events, nil
	}

	apiName, err := artist.APIName()
	if err != nil {
		return nil, err
	}

	body, err := s.client.get(ctx, artistsResource, apiName+"/events", nil)
	if err != nil {
		return nil, err
	}

	events, err := decodeEvents(body)
	if err != nil {
		return nil, fmt.Errorf("bandsintown: failed to parse artist events: %w", err)
	}

	artist.Events = events
	return events, nil
}

// CancelEvent asks Bandsintown to cancel one of the artist's events and
// returns the confirmation message.
func (s *ArtistService) CancelEvent(ctx context.Context, ref ArtistRef, eventID string) (string, error) {
	if eventID == "" {
		return "", ErrMissingEventID
	}

	apiName, err := ref.APIName()
	if err != nil {
		return "", err
	}

	body, err := s.client.post(ctx, artistsResource, apiName+"/events/"+url.PathEscape(eventID)+"/cancel", nil)
	if err != nil {
		return "", err
	}

	return decodeMessage(body)
}

// Create submits a new artist and returns the artist as stored by
// Bandsintown.
func (s *ArtistService) Create(ctx context.Context, opts ArtistOptions) (*Artist, error) {
	payload := map[string]ArtistOptions{"artist": opts}

	body, err := s.client.post(ctx, artistsResource, "", payload)
	if err != nil {
		return nil, err
	}

	artist, err := decodeArtist(body)
	if err != nil {
		return nil, fmt.Errorf("bandsintown: failed to parse created artist: %w", err)
	}
	return artist, nil
}
