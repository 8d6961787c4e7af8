package bandsintown

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
)

func TestVenueService_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/venues/search" {
			t.Errorf("expected path /venues/search, got %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("query"); q != "House of Blues" {
			t.Errorf("expected query House of Blues, got %s", q)
		}
		writeBody(t, w, http.StatusOK, `[
			{"id": 1700, "name": "House of Blues", "city": "Boston", "region": "MA", "country": "United States", "latitude": 42.347, "longitude": -71.095},
			{"id": "hob-chicago", "name": "House of Blues", "city": "Chicago", "region": "IL", "country": "United States"}
		]`)
	})

	venues, err := client.Venues().Search(context.Background(), Params{"query": "House of Blues"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(venues) != 2 {
		t.Fatalf("expected 2 venues, got %d", len(venues))
	}
	if venues[0].ID != "1700" {
		t.Errorf("expected numeric id to be kept as 1700, got %s", venues[0].ID)
	}
	if venues[1].ID != "hob-chicago" {
		t.Errorf("expected string id hob-chicago, got %s", venues[1].ID)
	}
	if venues[0].Longitude != -71.095 {
		t.Errorf("expected longitude -71.095, got %f", venues[0].Longitude)
	}
}

func TestVenueService_Events(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/venues/327987/events" {
			t.Errorf("expected path /venues/327987/events, got %s", r.URL.Path)
		}
		writeBody(t, w, http.StatusOK, littleBrotherEventsJSON)
	})

	venue := &Venue{ID: "327987"}
	events, err := client.Venues().Events(context.Background(), venue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	if _, err := client.Venues().Events(context.Background(), venue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("expected 1 request, got %d", n)
	}
}

func TestVenueService_Events_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no request to be sent")
	})

	if _, err := client.Venues().Events(context.Background(), &Venue{Name: "Somewhere"}); err == nil {
		t.Error("expected error for venue without id, got nil")
	}
}
