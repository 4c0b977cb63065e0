// Package history provides durable, deduplicated visit history with
// substring search for autocomplete.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    visits TEXT NOT NULL DEFAULT '[]',
    screenshot BLOB,
    favicon BLOB
);

CREATE INDEX IF NOT EXISTS idx_entries_updated ON entries(updated_at);
`

// Entry is a persisted record of a visited URL. At most one entry
// exists per URL; repeat visits accumulate in Visits.
type Entry struct {
	URL       string
	Title     string
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Visits    []time.Time
}

// Store is a SQLite-backed history store. All access is serialized:
// a prune must not race a concurrent record.
type Store struct {
	mu        sync.Mutex
	db        *sql.DB
	retention time.Duration
	now       func() time.Time
}

// Open opens or creates the history database at path. Entries whose
// last update is older than retention are deleted after every record.
func Open(path string, retention time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{
		db:        db,
		retention: retention,
		now:       time.Now,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record upserts an entry for url: an existing entry gets the visit
// appended and its updated_at bumped, a new one is created with a
// single visit. Expired entries are pruned afterwards, so history
// self-trims without a separate maintenance pass.
func (s *Store) Record(url, title, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()

	var visitsJSON string
	err := s.db.QueryRow("SELECT visits FROM entries WHERE url = ?", url).Scan(&visitsJSON)
	switch {
	case err == sql.ErrNoRows:
		visits, _ := json.Marshal([]time.Time{now})
		_, err = s.db.Exec(
			"INSERT INTO entries (url, title, summary, created_at, updated_at, visits) VALUES (?, ?, ?, ?, ?, ?)",
			url, title, summary, timestamp(now), timestamp(now), string(visits),
		)
		if err != nil {
			return fmt.Errorf("inserting history entry: %w", err)
		}

	case err != nil:
		return fmt.Errorf("looking up history entry: %w", err)

	default:
		var visits []time.Time
		if err := json.Unmarshal([]byte(visitsJSON), &visits); err != nil {
			visits = nil
		}
		visits = append(visits, now)
		updated, _ := json.Marshal(visits)
		_, err = s.db.Exec(
			"UPDATE entries SET title = ?, summary = ?, updated_at = ?, visits = ? WHERE url = ?",
			title, summary, timestamp(now), string(updated), url,
		)
		if err != nil {
			return fmt.Errorf("updating history entry: %w", err)
		}
	}

	return s.pruneLocked()
}

// Prune deletes entries whose updated_at is older than the retention
// window.
func (s *Store) Prune() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked()
}

func (s *Store) pruneLocked() error {
	if s.retention <= 0 {
		return nil
	}
	cutoff := s.now().UTC().Add(-s.retention)
	if _, err := s.db.Exec("DELETE FROM entries WHERE updated_at < ?", timestamp(cutoff)); err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// Matching returns entries whose URL or title contains query,
// case-insensitively, ordered by most recent first and truncated to
// limit. An empty query matches everything. The filter runs in Go:
// SQLite's lower() only folds ASCII, which would make non-ASCII
// titles case-sensitive.
func (s *Store) Matching(query string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT url, title, summary, created_at, updated_at, visits FROM entries
		 ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	q := strings.ToLower(strings.TrimSpace(query))

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created, updated, visitsJSON string
		if err := rows.Scan(&e.URL, &e.Title, &e.Summary, &created, &updated, &visitsJSON); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.URL), q) &&
			!strings.Contains(strings.ToLower(e.Title), q) {
			continue
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		json.Unmarshal([]byte(visitsJSON), &e.Visits)
		entries = append(entries, e)
		if len(entries) == limit {
			break
		}
	}
	return entries, rows.Err()
}

// Len returns the number of stored entries.
func (s *Store) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}

// timestamp formats a time for storage. RFC3339 in UTC sorts
// lexicographically, which the recency ordering relies on.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
