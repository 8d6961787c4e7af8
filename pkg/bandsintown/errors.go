package bandsintown

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError represents an error reported by the Bandsintown API.
//
// The API answers failed requests with a JSON object carrying an "errors"
// array. Every message is kept, in order. Responses outside the 2xx range
// that carry no such payload are reported with the HTTP status text as the
// only message.
type APIError struct {
	StatusCode int      // HTTP status code of the response
	Messages   []string // Error messages from the "errors" payload
}

// Error returns all messages joined with ", ".
func (e *APIError) Error() string {
	return fmt.Sprintf("bandsintown: api error %d: %s", e.StatusCode, e.Message())
}

// Message returns the API messages joined the way the API documents them.
func (e *APIError) Message() string {
	if len(e.Messages) == 0 {
		return http.StatusText(e.StatusCode)
	}
	return strings.Join(e.Messages, ", ")
}

// Is reports whether target is an *APIError with the same status code.
//
// This allows errors.Is(err, &APIError{StatusCode: http.StatusNotFound}).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// MalformedResponseError is returned when a successful response body is not
// the JSON document the operation expects.
type MalformedResponseError struct {
	Content []byte
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("bandsintown: malformed response: %v: %s", e.Err, e.Content)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when a parameter value cannot be rendered into a
// query string.
type EncodeError struct {
	Key   string
	Value interface{}
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("bandsintown: cannot encode parameter %q (%T): %v", e.Key, e.Value, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Predefined errors for common cases.
var (
	// ErrInvalidIdentifier is returned when neither an artist name nor a
	// MusicBrainz id is available to build an artist identifier.
	ErrInvalidIdentifier = fmt.Errorf("bandsintown: artist name or mbid is required")

	// ErrMissingAppID is returned when no application id has been configured.
	ErrMissingAppID = fmt.Errorf("bandsintown: AppID is required")

	// ErrMissingEventID is returned when cancelling an event without an id.
	ErrMissingEventID = fmt.Errorf("bandsintown: event cancellation requires an event id")

	// ErrUnsupportedMethod is returned for HTTP methods other than GET and POST.
	ErrUnsupportedMethod = fmt.Errorf("bandsintown: only GET and POST requests are supported")

	// ErrOnTourUnknown is returned by Artist.OnTour when neither the upcoming
	// events count nor the event list has been loaded.
	ErrOnTourUnknown = fmt.Errorf("bandsintown: upcoming events unknown, load the artist or its events first")
)
