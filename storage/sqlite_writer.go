package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var sqliteDialect = dialect{
	name:        "sqlite",
	driver:      "sqlite",
	placeholder: questionMark,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS mmm_runs (
			run_id     TEXT    PRIMARY KEY,
			seed       INTEGER NOT NULL,
			weeks      INTEGER NOT NULL,
			channels   TEXT    NOT NULL,
			created_at TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS mmm_weeks (
			run_id     TEXT    NOT NULL REFERENCES mmm_runs(run_id),
			week_index INTEGER NOT NULL,
			week       TEXT    NOT NULL,
			sales      REAL    NOT NULL,
			PRIMARY KEY (run_id, week_index)
		)`,
		`CREATE TABLE IF NOT EXISTS mmm_spend (
			run_id     TEXT    NOT NULL REFERENCES mmm_runs(run_id),
			week_index INTEGER NOT NULL,
			channel    TEXT    NOT NULL,
			spend      REAL    NOT NULL,
			PRIMARY KEY (run_id, week_index, channel)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mmm_runs_created ON mmm_runs(created_at)`,
	},
}

// SQLiteWriter persists generated datasets to a local SQLite file.
type SQLiteWriter struct {
	*sqlWriter
}

// NewSQLiteWriter creates the database file (and its directory) if needed.
func NewSQLiteWriter(ctx context.Context, path string, opts SQLOptions) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create output dir: %w", err)
	}
	w, err := openSQL(ctx, sqliteDialect, path+"?_pragma=foreign_keys(1)", opts)
	if err != nil {
		return nil, err
	}
	// SQLite works best with a single writer.
	w.db.SetMaxOpenConns(1)
	return &SQLiteWriter{sqlWriter: w}, nil
}
