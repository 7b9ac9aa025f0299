package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the SQLite connection and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
	ids *idSource
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; one connection keeps them in force.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		drv: entsql.OpenDB(dialect.SQLite, db),
		seq: seq,
		ids: newIDSource(),
	}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// DeckRepo returns a DeckRepo backed by this store.
func (s *Store) DeckRepo() DeckRepo {
	return &sqliteDeckRepo{drv: s.drv}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq, ids: s.ids}
}

const schema = `
CREATE TABLE IF NOT EXISTS words (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL,
	seen     INTEGER NOT NULL DEFAULT 0,
	delay    REAL NOT NULL DEFAULT 0,
	duedate  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS cards (
	word_id  INTEGER NOT NULL REFERENCES words(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	type     TEXT NOT NULL,
	question TEXT NOT NULL,
	answer   TEXT NOT NULL,
	PRIMARY KEY (word_id, type)
);
CREATE INDEX IF NOT EXISTS idx_cards_question ON cards(question);

CREATE TABLE IF NOT EXISTS confusion (
	position INTEGER PRIMARY KEY,
	a        TEXT NOT NULL,
	b        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS answer_events (
	id         TEXT PRIMARY KEY,
	sequence   INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	session_id TEXT NOT NULL,
	word       TEXT NOT NULL,
	category   TEXT NOT NULL,
	card_type  TEXT NOT NULL,
	question   TEXT NOT NULL,
	expected   TEXT NOT NULL,
	given      TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	correct    INTEGER NOT NULL,
	round      INTEGER NOT NULL,
	time_ms    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_answer_events_word ON answer_events(word);
CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events(session_id);

CREATE TABLE IF NOT EXISTS session_events (
	id            TEXT PRIMARY KEY,
	sequence      INTEGER NOT NULL,
	created_at    INTEGER NOT NULL,
	session_id    TEXT NOT NULL,
	action        TEXT NOT NULL,
	answered      INTEGER NOT NULL DEFAULT 0,
	correct       INTEGER NOT NULL DEFAULT 0,
	wrong         INTEGER NOT NULL DEFAULT 0,
	near_misses   INTEGER NOT NULL DEFAULT 0,
	words_touched INTEGER NOT NULL DEFAULT 0,
	duration_secs INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_session_events_sequence ON session_events(sequence DESC);

CREATE TABLE IF NOT EXISTS llm_requests (
	id            TEXT PRIMARY KEY,
	sequence      INTEGER NOT NULL,
	created_at    INTEGER NOT NULL,
	provider      TEXT NOT NULL,
	model         TEXT NOT NULL,
	purpose       TEXT NOT NULL,
	input_tokens  INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	latency_ms    INTEGER NOT NULL,
	success       INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT ''
);
`

func migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Store drivers.
const (
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// DefaultPath resolves the deck location for driver in priority order:
// 1. FLASHDECK_STORE environment variable
// 2. $XDG_DATA_HOME/flashdeck/deck.{yaml,db}
// 3. ~/.local/share/flashdeck/deck.{yaml,db}
func DefaultPath(driver string) (string, error) {
	if p := os.Getenv("FLASHDECK_STORE"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	name := "deck.yaml"
	if driver == DriverSQLite {
		name = "deck.db"
	}
	p := filepath.Join(dataHome, "flashdeck", name)
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
