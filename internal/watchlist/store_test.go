package watchlist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
)

// createTestStore creates an in-memory SQLite watchlist for testing
func createTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestOpen(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		store, err := Open(":memory:")
		if err != nil {
			t.Fatalf("failed to create in-memory store: %v", err)
		}
		defer func() { _ = store.Close() }()

		if store.db == nil {
			t.Error("store database is nil")
		}
	})

	t.Run("file-based database persists", func(t *testing.T) {
		path := Path(t.TempDir())
		ctx := context.Background()

		store, err := Open(path)
		if err != nil {
			t.Fatalf("failed to create file-based store: %v", err)
		}
		if _, err := store.Add(ctx, "Little Brother", ""); err != nil {
			t.Fatalf("failed to add artist: %v", err)
		}
		_ = store.Close()

		reopened, err := Open(path)
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		defer func() { _ = reopened.Close() }()

		count, err := reopened.Count(ctx)
		if err != nil {
			t.Fatalf("failed to count artists: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 artist after reopening, got %d", count)
		}
	})
}

func TestPath(t *testing.T) {
	if got, want := Path("/data"), filepath.Join("/data", "watchlist.db"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestStoreAdd(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	entry, err := store.Add(ctx, "  AC/DC ", "")
	if err != nil {
		t.Fatalf("failed to add artist: %v", err)
	}

	if entry.ID <= 0 {
		t.Errorf("expected positive id, got %d", entry.ID)
	}
	if entry.Name != "AC/DC" {
		t.Errorf("expected trimmed name AC/DC, got %q", entry.Name)
	}
	if entry.Identifier != "AC%252FDC" {
		t.Errorf("expected identifier AC%%252FDC, got %s", entry.Identifier)
	}
	if entry.Checked() {
		t.Error("expected new artist not to be checked")
	}
	if !entry.LastChecked.IsZero() {
		t.Errorf("expected zero last checked, got %v", entry.LastChecked)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected created at to be set")
	}
}

func TestStoreAdd_ByMBID(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	entry, err := store.Add(ctx, "", "1234")
	if err != nil {
		t.Fatalf("failed to add artist: %v", err)
	}
	if entry.Identifier != "mbid_1234" {
		t.Errorf("expected identifier mbid_1234, got %s", entry.Identifier)
	}
	if ref := entry.Ref(); ref != (bandsintown.ArtistRef{MBID: "1234"}) {
		t.Errorf("unexpected ref: %+v", ref)
	}
}

func TestStoreAdd_Invalid(t *testing.T) {
	store := createTestStore(t)

	_, err := store.Add(context.Background(), " ", "")
	if !errors.Is(err, bandsintown.ErrInvalidIdentifier) {
		t.Errorf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestStoreAdd_Duplicate(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
	}{
		{name: "same name", first: "Meg & Dia", second: "Meg & Dia"},
		{name: "different case", first: "Meg & Dia", second: "meg & dia"},
		{name: "decomposed accent", first: "Sigur R\u00f3s", second: "Sigur Ro\u0301s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStore(t)
			ctx := context.Background()

			if _, err := store.Add(ctx, tt.first, ""); err != nil {
				t.Fatalf("failed to add artist: %v", err)
			}

			_, err := store.Add(ctx, tt.second, "")
			if !errors.Is(err, ErrAlreadyWatched) {
				t.Errorf("expected ErrAlreadyWatched, got %v", err)
			}

			count, err := store.Count(ctx)
			if err != nil {
				t.Fatalf("failed to count artists: %v", err)
			}
			if count != 1 {
				t.Errorf("expected 1 artist, got %d", count)
			}
		})
	}
}

func TestStoreRemove(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "Little Brother", ""); err != nil {
		t.Fatalf("failed to add artist: %v", err)
	}

	if err := store.Remove(ctx, "little brother", ""); err != nil {
		t.Fatalf("failed to remove artist: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count artists: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 artists, got %d", count)
	}

	if err := store.Remove(ctx, "Little Brother", ""); !errors.Is(err, ErrNotWatched) {
		t.Errorf("expected ErrNotWatched, got %v", err)
	}
}

func TestStoreGet_NotWatched(t *testing.T) {
	store := createTestStore(t)

	_, err := store.Get(context.Background(), "Nobody", "")
	if !errors.Is(err, ErrNotWatched) {
		t.Errorf("expected ErrNotWatched, got %v", err)
	}
}

func TestStoreList(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Pete Rock", "little brother", "Joe Scudda"} {
		if _, err := store.Add(ctx, name, ""); err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("failed to list artists: %v", err)
	}

	want := []string{"Joe Scudda", "little brother", "Pete Rock"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d artists, got %d", len(want), len(entries))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("expected artist %d to be %s, got %s", i, name, entries[i].Name)
		}
	}
}

func TestStoreList_Empty(t *testing.T) {
	store := createTestStore(t)

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list artists: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no artists, got %d", len(entries))
	}
}

func TestStoreRecordCheck(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	entry, err := store.Add(ctx, "Little Brother", "")
	if err != nil {
		t.Fatalf("failed to add artist: %v", err)
	}

	checkedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.RecordCheck(ctx, entry.ID, 4, checkedAt); err != nil {
		t.Fatalf("failed to record check: %v", err)
	}

	updated, err := store.Get(ctx, "Little Brother", "")
	if err != nil {
		t.Fatalf("failed to get artist: %v", err)
	}
	if !updated.Checked() || *updated.UpcomingEvents != 4 {
		t.Errorf("expected 4 upcoming events, got %v", updated.UpcomingEvents)
	}
	if !updated.LastChecked.Equal(checkedAt) {
		t.Errorf("expected last checked %v, got %v", checkedAt, updated.LastChecked)
	}

	if err := store.RecordCheck(ctx, 9999, 1, checkedAt); !errors.Is(err, ErrNotWatched) {
		t.Errorf("expected ErrNotWatched for unknown id, got %v", err)
	}
}
