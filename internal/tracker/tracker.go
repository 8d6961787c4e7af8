package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jfmyers9/bandsintown/internal/watchlist"
	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"github.com/rs/zerolog"
)

// EventLister loads the upcoming events of an artist.
// *bandsintown.ArtistService implements it.
type EventLister interface {
	Events(ctx context.Context, artist *bandsintown.Artist) ([]bandsintown.Event, error)
}

// Result is the outcome of checking one watched artist
type Result struct {
	Entry  watchlist.Entry
	Events []bandsintown.Event
	Err    error

	// NewTour is true when the artist had no upcoming events at the
	// previous check and has some now. The first check never sets it.
	NewTour bool
}

// Report is sent for every periodic check. Err is set when the check as a
// whole failed; failures of single artists are in their Result.
type Report struct {
	Results []Result
	Err     error
}

// DefaultInterval is used when no poll interval is configured.
const DefaultInterval = time.Hour

// Tracker periodically checks the watchlist for upcoming events
type Tracker struct {
	events   EventLister
	store    *watchlist.Store
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	// checkMu serializes checks so each one sees the counts recorded by
	// the previous one.
	checkMu sync.Mutex
}

// New creates a new Tracker instance
func New(events EventLister, store *watchlist.Store, interval time.Duration, logger zerolog.Logger) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{
		events:   events,
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "tracker").Logger(),
		now:      time.Now,
	}
}

// Check fetches upcoming events for every watched artist and records the
// counts. A failure for one artist is reported in its Result and does not
// stop the others; only watchlist and context errors abort the check.
func (t *Tracker) Check(ctx context.Context) ([]Result, error) {
	t.checkMu.Lock()
	defer t.checkMu.Unlock()

	entries, err := t.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}

	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := t.checkEntry(ctx, entry)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// checkEntry checks a single artist. The returned error is only set for
// failures that should abort the whole check.
func (t *Tracker) checkEntry(ctx context.Context, entry watchlist.Entry) (Result, error) {
	artist := &bandsintown.Artist{Name: entry.Name, MBID: entry.MBID}

	events, err := t.events.Events(ctx, artist)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		t.logger.Warn().
			Err(err).
			Str("artist", entry.Name).
			Msg("Failed to fetch events")
		return Result{Entry: entry, Err: err}, nil
	}

	wasOnTour := entry.Checked() && *entry.UpcomingEvents > 0
	newTour := entry.Checked() && !wasOnTour && len(events) > 0

	checkedAt := t.now()
	if err := t.store.RecordCheck(ctx, entry.ID, len(events), checkedAt); err != nil {
		if errors.Is(err, watchlist.ErrNotWatched) {
			// Removed while the check was running
			return Result{Entry: entry, Events: events, Err: err}, nil
		}
		return Result{}, fmt.Errorf("failed to record check for %q: %w", entry.Name, err)
	}

	count := len(events)
	entry.UpcomingEvents = &count
	entry.LastChecked = checkedAt

	if newTour {
		t.logger.Info().
			Str("artist", entry.Name).
			Int("events", count).
			Msg("Artist announced a tour")
	} else {
		t.logger.Debug().
			Str("artist", entry.Name).
			Int("events", count).
			Msg("Checked artist")
	}

	return Result{Entry: entry, Events: events, NewTour: newTour}, nil
}

// Run starts the tracker and blocks until a shutdown signal is received
func (t *Tracker) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			t.logger.Info().Msg("Shutdown signal received, stopping tracker")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := t.Watch(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// Watch checks the watchlist immediately and then on every tick until ctx
// is cancelled. A report of each check is sent to reports when it is not nil.
func (t *Tracker) Watch(ctx context.Context, reports chan<- Report) error {
	count, err := t.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count watchlist: %w", err)
	}

	t.logger.Info().
		Dur("interval", t.interval).
		Int("artists", count).
		Msg("Starting tracker")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	// Check immediately on start
	t.tick(ctx, reports)

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("Tracker stopped")
			return ctx.Err()
		case <-ticker.C:
			t.tick(ctx, reports)
		}
	}
}

func (t *Tracker) tick(ctx context.Context, reports chan<- Report) {
	checked, err := t.Check(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		t.logger.Error().Err(err).Msg("Watchlist check failed")
		t.send(ctx, reports, Report{Err: err})
		return
	}

	failed := 0
	for _, r := range checked {
		if r.Err != nil {
			failed++
		}
	}
	t.logger.Info().
		Int("artists", len(checked)).
		Int("failed", failed).
		Msg("Watchlist checked")

	t.send(ctx, reports, Report{Results: checked})
}

func (t *Tracker) send(ctx context.Context, reports chan<- Report, report Report) {
	if reports == nil {
		return
	}
	select {
	case reports <- report:
	case <-ctx.Done():
	}
}
