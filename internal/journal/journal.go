// Package journal keeps a sqlite record of every mutation the sweep attempts.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS mutations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT    NOT NULL,
	region      TEXT    NOT NULL,
	kind        TEXT    NOT NULL,
	resource_id TEXT    NOT NULL,
	operation   TEXT    NOT NULL,
	dry_run     INTEGER NOT NULL,
	error       TEXT    NOT NULL DEFAULT '',
	created_at  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS mutations_run ON mutations (run_id);
`

// Entry is one attempted mutation.
type Entry struct {
	RunID      string
	Region     string
	Kind       string
	ResourceID string
	Operation  string // detach, delete, delete-entry, revoke-ingress, revoke-egress, update-setting
	DryRun     bool
	Err        string
	CreatedAt  time.Time
}

type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the journal database at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores e. A zero CreatedAt is set to the current time.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = j.now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO mutations (run_id, region, kind, resource_id, operation, dry_run, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Region, e.Kind, e.ResourceID, e.Operation, e.DryRun, e.Err,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s %s: %w", e.Operation, e.ResourceID, err)
	}
	return nil
}

// Entries returns the entries of a run in the order they were recorded.
func (j *Journal) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, region, kind, resource_id, operation, dry_run, error, created_at
		 FROM mutations WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.RunID, &e.Region, &e.Kind, &e.ResourceID, &e.Operation, &e.DryRun, &e.Err, &created); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing journal time %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
