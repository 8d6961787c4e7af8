// Package bandsintown provides a client library for the Bandsintown API.
//
// # Overview
//
// This package wraps the artists, events and venues resources of the
// Bandsintown API behind typed Go methods. It reproduces the API's own
// conventions for artist identifiers and query strings, so that requests
// address the same resources as the official clients.
//
// # Installation
//
//	go get github.com/jfmyers9/bandsintown/pkg/bandsintown
//
// # Quick Start
//
// Every request carries the application id registered with Bandsintown:
//
//	import "github.com/jfmyers9/bandsintown/pkg/bandsintown"
//
//	client, err := bandsintown.NewClient(bandsintown.Config{
//	    AppID: "YOUR_APP_ID",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Artists
//
// Artists are addressed by an identifier derived from their name (see
// GenerateIdentifier), or by their MusicBrainz id when the name is unknown:
//
//	artist, err := client.Artists().Get(ctx, bandsintown.ArtistRef{Name: "Little Brother"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events, err := client.Artists().Events(ctx, artist)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	onTour, _ := artist.OnTour()
//	fmt.Println(artist.Name, onTour, len(events))
//
// # Events
//
// Event searches take a Params map. Slices are sent as repeated "key[]"
// pairs and a start_date/end_date pair is collapsed into a date range:
//
//	events, err := client.Events().Search(ctx, bandsintown.Params{
//	    "artists":    []string{"Little Brother", "Joe Scudda"},
//	    "location":   "Boston, MA",
//	    "radius":     10,
//	    "start_date": time.Now(),
//	    "end_date":   time.Now().AddDate(0, 1, 0),
//	})
//
// # Error Handling
//
// Errors reported by the API are returned as *APIError:
//
//	_, err := client.Artists().Get(ctx, bandsintown.ArtistRef{Name: "Nobody"})
//	var apiErr *bandsintown.APIError
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.StatusCode, apiErr.Message())
//	}
//
// Responses that cannot be decoded are returned as *MalformedResponseError.
// Network and context errors are wrapped and can be inspected with
// errors.Is.
//
// # Thread Safety
//
// A Client is safe for concurrent use. Artist and Venue values returned by
// the services are plain records owned by the caller; loading their events
// stores the result on the record and is not synchronized.
package bandsintown
