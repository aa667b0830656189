// Package store provides the SQLite seen ledger: which papers have already
// been shown for a subject, and when.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jpreyes/paperradar/internal/feed"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex // Protects all database operations
	now func() time.Time
}

// Seen is one ledger row.
type Seen struct {
	Subject   string
	Identity  string
	Title     string
	URL       string
	Score     float64
	FirstSeen time.Time
	LastSeen  time.Time
	Shown     int
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for file-based DBs.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db, now: time.Now}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS seen (
		subject TEXT NOT NULL,
		identity TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		score REAL NOT NULL DEFAULT 0,
		first_seen DATETIME NOT NULL,
		last_seen DATETIME NOT NULL,
		shown INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (subject, identity)
	);

	CREATE INDEX IF NOT EXISTS idx_seen_last ON seen(subject, last_seen DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// MarkSeen records entries as shown for subject and returns the identities
// that had never been shown before. Entries without an identity are skipped.
// Thread-safe: acquires write lock.
func (s *Store) MarkSeen(subject string, entries []feed.Entry) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make(map[string]bool)
	if len(entries) == 0 {
		return fresh, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	insert, err := tx.Prepare(`
		INSERT OR IGNORE INTO seen (subject, identity, title, url, score, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer insert.Close()

	touch, err := tx.Prepare(`
		UPDATE seen SET last_seen = ?, score = ?, shown = shown + 1
		WHERE subject = ? AND identity = ?
	`)
	if err != nil {
		return nil, err
	}
	defer touch.Close()

	now := s.now().UTC()
	for _, e := range entries {
		key := feed.Identity(e)
		if key == "" || fresh[key] {
			continue
		}

		result, err := insert.Exec(subject, key, e.Item.Title, e.Item.URL, e.Score, now, now)
		if err != nil {
			return nil, fmt.Errorf("insert %s: %w", key, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected > 0 {
			fresh[key] = true
			continue
		}

		if _, err := touch.Exec(now, e.Score, subject, key); err != nil {
			return nil, fmt.Errorf("touch %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return fresh, nil
}

// SeenCount returns how many distinct papers have been shown for subject.
// Thread-safe: acquires read lock.
func (s *Store) SeenCount(subject string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM seen WHERE subject = ?", subject).Scan(&n)
	return n, err
}

// Recent returns subject's ledger rows, most recently shown first.
// Thread-safe: acquires read lock.
func (s *Store) Recent(subject string, limit int) ([]Seen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT subject, identity, title, url, score, first_seen, last_seen, shown
		FROM seen
		WHERE subject = ?
		ORDER BY last_seen DESC, first_seen DESC, identity
		LIMIT ?
	`, subject, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Seen
	for rows.Next() {
		var r Seen
		if err := rows.Scan(&r.Subject, &r.Identity, &r.Title, &r.URL, &r.Score, &r.FirstSeen, &r.LastSeen, &r.Shown); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
