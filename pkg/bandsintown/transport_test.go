package bandsintown

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestClient_RequestURL(t *testing.T) {
	client, err := NewClient(Config{AppID: "ABC", BaseURL: "http://api.example.com"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	tests := []struct {
		name     string
		resource string
		method   string
		params   Params
		want     string
	}{
		{
			name:     "resource and method",
			resource: "events",
			method:   "search",
			params:   Params{"location": "Boston, MA"},
			want:     "http://api.example.com/events/search?app_id=ABC&format=json&location=Boston%2C+MA",
		},
		{
			name:     "blank method leaves no trailing slash",
			resource: "events",
			want:     "http://api.example.com/events?app_id=ABC&format=json",
		},
		{
			name:     "nested method path",
			resource: "artists",
			method:   "PeteRock/events",
			want:     "http://api.example.com/artists/PeteRock/events?app_id=ABC&format=json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.requestURL(tt.resource, tt.method, tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClient_Get(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET request, got %s", r.Method)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("expected Accept application/json, got %s", accept)
		}
		want := "/events/search?app_id=test-app-id&artists%5B%5D=Little+Brother&artists%5B%5D=Joe+Scudda&format=json&location=Boston%2C+MA&radius=10"
		if r.RequestURI != want {
			t.Errorf("expected request uri %s, got %s", want, r.RequestURI)
		}
		writeBody(t, w, http.StatusOK, `[]`)
	})

	body, err := client.get(context.Background(), "events", "search", Params{
		"artists":  []string{"Little Brother", "Joe Scudda"},
		"location": "Boston, MA",
		"radius":   10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "[]" {
		t.Errorf("expected body [], got %s", body)
	}
}

func TestClient_Post(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		if r.URL.RawQuery != "app_id=test-app-id&format=json" {
			t.Errorf("expected only fixed query params, got %s", r.URL.RawQuery)
		}

		data, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		var payload map[string]map[string]string
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if name := payload["artist"]["name"]; name != "A New Artist" {
			t.Errorf("expected artist name A New Artist, got %s", name)
		}

		writeBody(t, w, http.StatusOK, `{"message":"ok"}`)
	})

	body, err := client.post(context.Background(), "artists", "", map[string]map[string]string{
		"artist": {"name": "A New Artist"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg, err := decodeMessage(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "ok" {
		t.Errorf("expected message ok, got %s", msg)
	}
}

func TestClient_UnsupportedMethod(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no request to be sent")
	})

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		_, err := client.request(context.Background(), method, "events", "", nil, nil)
		if !errors.Is(err, ErrUnsupportedMethod) {
			t.Errorf("%s: expected ErrUnsupportedMethod, got %v", method, err)
		}
	}
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		response     string
		wantStatus   int
		wantMessage  string
		wantMessages int
	}{
		{
			name:         "errors payload with 4xx",
			statusCode:   http.StatusNotFound,
			response:     `{"errors":["Unknown Artist"]}`,
			wantStatus:   http.StatusNotFound,
			wantMessage:  "Unknown Artist",
			wantMessages: 1,
		},
		{
			name:         "errors payload with 200",
			statusCode:   http.StatusOK,
			response:     `{"errors":["location is invalid","radius is too large"]}`,
			wantStatus:   http.StatusOK,
			wantMessage:  "location is invalid, radius is too large",
			wantMessages: 2,
		},
		{
			name:         "plain text 5xx",
			statusCode:   http.StatusInternalServerError,
			response:     "boom",
			wantStatus:   http.StatusInternalServerError,
			wantMessage:  "boom",
			wantMessages: 1,
		},
		{
			name:         "empty 5xx",
			statusCode:   http.StatusBadGateway,
			response:     "",
			wantStatus:   http.StatusBadGateway,
			wantMessage:  "Bad Gateway",
			wantMessages: 0,
		},
		{
			name:         "json 4xx without errors",
			statusCode:   http.StatusForbidden,
			response:     `{"message":"nope"}`,
			wantStatus:   http.StatusForbidden,
			wantMessage:  "Forbidden",
			wantMessages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeBody(t, w, tt.statusCode, tt.response)
			})

			_, err := client.get(context.Background(), "events", "search", nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, apiErr.StatusCode)
			}
			if apiErr.Message() != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, apiErr.Message())
			}
			if len(apiErr.Messages) != tt.wantMessages {
				t.Errorf("expected %d messages, got %d", tt.wantMessages, len(apiErr.Messages))
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("expected error to contain %q, got %v", tt.wantMessage, err)
			}
			if !errors.Is(err, &APIError{StatusCode: tt.wantStatus}) {
				t.Error("expected errors.Is to match on status code")
			}
		})
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(t, w, http.StatusOK, `<html>maintenance</html>`)
	})

	_, err := client.Events().Daily(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedResponseError, got %T: %v", err, err)
	}
	if string(malformed.Content) != "<html>maintenance</html>" {
		t.Errorf("expected response content to be kept, got %s", malformed.Content)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Simulate slow server
		time.Sleep(100 * time.Millisecond)
		writeBody(t, w, http.StatusOK, `[]`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Events().Daily(ctx)
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

func TestAPIError_Is(t *testing.T) {
	err := &APIError{StatusCode: http.StatusNotFound, Messages: []string{"Unknown Artist"}}

	if !errors.Is(err, &APIError{StatusCode: http.StatusNotFound}) {
		t.Error("expected match on same status code")
	}
	if errors.Is(err, &APIError{StatusCode: http.StatusBadRequest}) {
		t.Error("expected no match on different status code")
	}
	if errors.Is(err, ErrMissingAppID) {
		t.Error("expected no match on unrelated error")
	}
}
