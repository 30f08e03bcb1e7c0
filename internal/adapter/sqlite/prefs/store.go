// Package prefs stores per-document display-section state (open/closed)
// in a local SQLite file. The state is deliberately kept apart from the
// durable analysis documents: deleting the file resets every section to
// its default (open) without touching any analysis.
package prefs

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Sections lists the displayable sections of a results view, in display
// order. Unknown section names are rejected by the transport layer, not
// here.
var Sections = []string{"summary", "weights", "durations", "keywords", "offtopic", "transcript"}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS section_state (
    document_id TEXT NOT NULL,
    section     TEXT NOT NULL,
    open        INTEGER NOT NULL,
    PRIMARY KEY (document_id, section)
);`

// Store persists section open/closed flags keyed by (document, section).
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the preferences database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("prefs: open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs: ping database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the preferences database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get returns the open/closed flag for every known section of a document.
// Sections without a stored flag default to open.
func (s *Store) Get(ctx context.Context, documentID uuid.UUID) (map[string]bool, error) {
	state := make(map[string]bool, len(Sections))
	for _, sec := range Sections {
		state[sec] = true
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT section, open FROM section_state WHERE document_id = ?`,
		documentID.String())
	if err != nil {
		return nil, fmt.Errorf("prefs: query state: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			section string
			open    bool
		)
		if err := rows.Scan(&section, &open); err != nil {
			return nil, fmt.Errorf("prefs: scan state: %w", err)
		}
		state[section] = open
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("prefs: read state: %w", err)
	}

	return state, nil
}

// Set stores the flag for one (document, section) pair.
func (s *Store) Set(ctx context.Context, documentID uuid.UUID, section string, open bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO section_state (document_id, section, open) VALUES (?, ?, ?)
		ON CONFLICT (document_id, section) DO UPDATE SET open = excluded.open`,
		documentID.String(), section, open)
	if err != nil {
		return fmt.Errorf("prefs: set state: %w", err)
	}
	return nil
}

// Toggle flips the flag for one (document, section) pair and returns the
// new value. A section never touched before toggles from its default
// (open) to closed.
func (s *Store) Toggle(ctx context.Context, documentID uuid.UUID, section string) (bool, error) {
	state, err := s.Get(ctx, documentID)
	if err != nil {
		return false, err
	}

	open, ok := state[section]
	if !ok {
		open = true
	}
	next := !open

	if err := s.Set(ctx, documentID, section, next); err != nil {
		return false, err
	}
	return next, nil
}

// SetAll stores the same flag for every known section of a document
// (bulk expand/collapse).
func (s *Store) SetAll(ctx context.Context, documentID uuid.UUID, open bool) error {
	for _, sec := range Sections {
		if err := s.Set(ctx, documentID, sec, open); err != nil {
			return err
		}
	}
	return nil
}
