package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

// DBName is the file name of the watchlist database inside the data directory.
const DBName = "watchlist.db"

var (
	// ErrNotWatched is returned when an artist is not on the watchlist.
	ErrNotWatched = errors.New("artist is not on the watchlist")

	// ErrAlreadyWatched is returned when adding an artist that is already watched.
	ErrAlreadyWatched = errors.New("artist is already on the watchlist")
)

// Store manages the list of followed artists using SQLite
type Store struct {
	db *sql.DB
}

// Entry represents a followed artist
type Entry struct {
	ID         int64
	Name       string
	MBID       string
	Identifier string // API identifier derived from Name (or MBID)

	// UpcomingEvents is nil until the artist has been checked once.
	UpcomingEvents *int
	LastChecked    time.Time // zero until the artist has been checked once
	CreatedAt      time.Time
}

// Ref returns the reference used to look the artist up on Bandsintown.
func (e Entry) Ref() bandsintown.ArtistRef {
	return bandsintown.ArtistRef{Name: e.Name, MBID: e.MBID}
}

// Checked reports whether the artist has been checked at least once.
func (e Entry) Checked() bool {
	return e.UpcomingEvents != nil
}

// Path returns the watchlist database path inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, DBName)
}

// Open opens (and creates if needed) a watchlist backed by SQLite
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent across calls
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS artists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			name_key TEXT NOT NULL UNIQUE,
			mbid TEXT NOT NULL DEFAULT '',
			identifier TEXT NOT NULL,
			upcoming_events INTEGER,
			last_checked INTEGER,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE INDEX IF NOT EXISTS idx_last_checked ON artists(last_checked);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// nameKey is the lookup key for an artist. Names are compared after NFC
// normalization and case folding so "Sigur Rós" typed with a combining accent
// matches the precomposed form.
func nameKey(name, mbid string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "mbid:" + strings.TrimSpace(mbid)
	}
	return cases.Fold().String(norm.NFC.String(name))
}

// Add puts an artist on the watchlist. The name may be empty when an mbid
// is given.
func (s *Store) Add(ctx context.Context, name, mbid string) (*Entry, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	mbid = strings.TrimSpace(mbid)

	identifier, err := bandsintown.GenerateIdentifier(name, mbid)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO artists (name, name_key, mbid, identifier)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name_key) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query, name, nameKey(name, mbid), mbid, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to insert artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%q: %w", displayName(name, mbid), ErrAlreadyWatched)
	}

	return s.Get(ctx, name, mbid)
}

// Remove takes an artist off the watchlist
func (s *Store) Remove(ctx context.Context, name, mbid string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM artists WHERE name_key = ?", nameKey(name, mbid))
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%q: %w", displayName(name, mbid), ErrNotWatched)
	}

	return nil
}

const selectColumns = `
	SELECT id, name, mbid, identifier, upcoming_events, last_checked, created_at
	FROM artists
`

// Get retrieves a single watched artist
func (s *Store) Get(ctx context.Context, name, mbid string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE name_key = ?", nameKey(name, mbid))

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", displayName(name, mbid), ErrNotWatched)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List retrieves all watched artists, ordered by name
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY name_key ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}

	return entries, nil
}

// RecordCheck stores the result of checking an artist for upcoming events
func (s *Store) RecordCheck(ctx context.Context, id int64, upcoming int, at time.Time) error {
	query := `
		UPDATE artists
		SET upcoming_events = ?, last_checked = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, upcoming, at.Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to record check: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("artist with id %d: %w", id, ErrNotWatched)
	}

	return nil
}

// Count returns the number of watched artists
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artists").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}

	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var upcoming sql.NullInt64
	var lastChecked sql.NullInt64
	var createdAt int64

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.MBID,
		&e.Identifier,
		&upcoming,
		&lastChecked,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}

	if upcoming.Valid {
		n := int(upcoming.Int64)
		e.UpcomingEvents = &n
	}
	if lastChecked.Valid {
		e.LastChecked = time.Unix(lastChecked.Int64, 0)
	}
	e.CreatedAt = time.Unix(createdAt, 0)

	return &e, nil
}

func displayName(name, mbid string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return "mbid " + mbid
}
