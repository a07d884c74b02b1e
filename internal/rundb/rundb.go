// Package rundb records decomposition runs in a sqlite database so past
// inputs, footprints and outputs can be audited later. Schema is managed by
// embedded golang-migrate migrations.
package rundb

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the sqlite run-history database.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the history database at path and applies
// any pending migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	d := &DB{db}
	if err := d.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// migrateUp applies all pending migrations. Returns nil when the schema is
// already current.
func (db *DB) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Not closing m here: that would close the underlying DB connection.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Run is one recorded decomposition.
type Run struct {
	RunID          string
	StartedAt      time.Time
	AscendingPath  string
	DescendingPath string
	Azimuth        float64

	// Common footprint and output grid shape.
	West   float64
	East   float64
	South  float64
	North  float64
	Width  int
	Length int

	VerticalOut   string
	HorizontalOut string
	WallMillis    int64
}

// NewRun allocates a Run with a fresh id and start timestamp.
func NewRun(ascPath, descPath string, azimuth float64) *Run {
	return &Run{
		RunID:          uuid.NewString(),
		StartedAt:      time.Now().UTC(),
		AscendingPath:  ascPath,
		DescendingPath: descPath,
		Azimuth:        azimuth,
	}
}

// RecordRun inserts a completed run.
func (db *DB) RecordRun(r *Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (
			run_id, started_unix_nanos, ascending_path, descending_path,
			azimuth, west, east, south, north, width, length,
			vertical_out, horizontal_out, wall_millis
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.StartedAt.UnixNano(), r.AscendingPath, r.DescendingPath,
		r.Azimuth, r.West, r.East, r.South, r.North, r.Width, r.Length,
		r.VerticalOut, r.HorizontalOut, r.WallMillis,
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", r.RunID, err)
	}
	return nil
}

// ListRuns returns up to limit runs, most recent first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, started_unix_nanos, ascending_path, descending_path,
		       azimuth, west, east, south, north, width, length,
		       vertical_out, horizontal_out, wall_millis
		FROM runs ORDER BY started_unix_nanos DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedNanos int64
		if err := rows.Scan(
			&r.RunID, &startedNanos, &r.AscendingPath, &r.DescendingPath,
			&r.Azimuth, &r.West, &r.East, &r.South, &r.North, &r.Width, &r.Length,
			&r.VerticalOut, &r.HorizontalOut, &r.WallMillis,
		); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(0, startedNanos).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
