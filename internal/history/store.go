// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite record of past conversions, keyed by
// source, so unchanged PDFs can be skipped on later runs.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Lookup when a source has no record.
var ErrNotFound = errors.New("no conversion recorded")

const defaultListLimit = 50

// Record is one conversion outcome.
type Record struct {
	Source      string    `json:"source" yaml:"source"`
	Output      string    `json:"output" yaml:"output"`
	ContentHash string    `json:"content_hash" yaml:"content_hash"`
	Backend     string    `json:"backend" yaml:"backend"`
	Status      string    `json:"status" yaml:"status"`
	Sections    int       `json:"sections" yaml:"sections"`
	Elements    int       `json:"elements" yaml:"elements"`
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at path, creating parent
// directories and the schema as needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			source TEXT PRIMARY KEY,
			output TEXT,
			content_hash TEXT NOT NULL,
			backend TEXT,
			status TEXT NOT NULL,
			sections INTEGER,
			elements INTEGER,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_hash ON conversions(content_hash)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts or replaces the record for r.Source.
func (s *Store) Record(ctx context.Context, r Record) error {
	if r.ConvertedAt.IsZero() {
		r.ConvertedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source, output, content_hash, backend, status, sections, elements, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			output=excluded.output, content_hash=excluded.content_hash,
			backend=excluded.backend, status=excluded.status,
			sections=excluded.sections, elements=excluded.elements,
			converted_at=excluded.converted_at`,
		r.Source, r.Output, r.ContentHash, r.Backend, r.Status,
		r.Sections, r.Elements, r.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", r.Source, err)
	}
	return nil
}

// Lookup returns the record for source, or ErrNotFound.
func (s *Store) Lookup(ctx context.Context, source string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT source, output, content_hash, backend, status, sections, elements, converted_at
		 FROM conversions WHERE source = ?`, source)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%s: %w", source, ErrNotFound)
	}
	return r, err
}

// List returns the most recent records first. limit <= 0 uses a default.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, output, content_hash, backend, status, sections, elements, converted_at
		 FROM conversions ORDER BY converted_at DESC, source LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r       Record
		output  sql.NullString
		backend sql.NullString
		at      string
	)
	if err := sc.Scan(&r.Source, &output, &r.ContentHash, &backend, &r.Status,
		&r.Sections, &r.Elements, &at); err != nil {
		return Record{}, err
	}
	r.Output = output.String
	r.Backend = backend.String
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return Record{}, fmt.Errorf("parsing converted_at for %s: %w", r.Source, err)
	}
	r.ConvertedAt = t
	return r, nil
}
