// Package store exports parsed GEDCOM files into a SQLite database.
//
// Every export is a run: one row in runs plus the records, individuals,
// families, family children and events read from the file, all written in
// a single transaction and keyed by the run's ULID.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/yaklabco/gedkit/internal/logging"
)

// Store is a SQLite export database.
type Store struct {
	db   *sql.DB
	path string

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{
		db:      db,
		path:    path,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0), //nolint:gosec // Run ids are not secrets.
		now:     time.Now,
	}

	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logging.FromContext(ctx).Debug("Opened export database", logging.FieldDatabase, path)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	codec       TEXT NOT NULL,
	dialect     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	run_id  TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq     INTEGER NOT NULL,
	file_offset  INTEGER NOT NULL,
	tag     TEXT NOT NULL,
	xref    TEXT,
	PRIMARY KEY (run_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_records_xref ON records(run_id, xref);

CREATE TABLE IF NOT EXISTS individuals (
	run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	xref         TEXT,
	name         TEXT NOT NULL,
	given        TEXT,
	surname      TEXT,
	maiden       TEXT,
	sex          TEXT NOT NULL,
	birth        TEXT,
	birth_jd     REAL,
	birth_place  TEXT,
	death        TEXT,
	death_jd     REAL,
	death_place  TEXT,
	father_xref  TEXT,
	mother_xref  TEXT,
	file_offset  INTEGER NOT NULL,
	PRIMARY KEY (run_id, file_offset)
);
CREATE INDEX IF NOT EXISTS idx_individuals_xref ON individuals(run_id, xref);
CREATE INDEX IF NOT EXISTS idx_individuals_surname ON individuals(run_id, surname);
CREATE INDEX IF NOT EXISTS idx_individuals_birth ON individuals(run_id, birth_jd);

CREATE TABLE IF NOT EXISTS families (
	run_id          TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	xref            TEXT,
	husband_xref    TEXT,
	wife_xref       TEXT,
	marriage        TEXT,
	marriage_jd     REAL,
	marriage_place  TEXT,
	file_offset     INTEGER NOT NULL,
	PRIMARY KEY (run_id, file_offset)
);
CREATE INDEX IF NOT EXISTS idx_families_xref ON families(run_id, xref);

CREATE TABLE IF NOT EXISTS family_children (
	run_id         TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	family_offset  INTEGER NOT NULL,
	family_xref    TEXT,
	seq            INTEGER NOT NULL,
	child_xref     TEXT,
	PRIMARY KEY (run_id, family_offset, seq)
);

CREATE TABLE IF NOT EXISTS events (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq         INTEGER NOT NULL,
	owner_xref  TEXT,
	owner_tag   TEXT NOT NULL,
	tag         TEXT NOT NULL,
	label       TEXT NOT NULL,
	type        TEXT,
	date        TEXT,
	date_jd     REAL,
	place       TEXT,
	PRIMARY KEY (run_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_events_owner ON events(run_id, owner_xref);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(run_id, date_jd);
`

// Migrate creates missing tables and indexes. It is safe to call on an
// existing database.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
