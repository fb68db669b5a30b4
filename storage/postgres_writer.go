package storage

import (
	"context"

	_ "github.com/lib/pq"
)

var postgresDialect = dialect{
	name:        "postgres",
	driver:      "postgres",
	placeholder: dollar,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS mmm_runs (
			run_id     CHAR(36)    PRIMARY KEY,
			seed       BIGINT      NOT NULL,
			weeks      INTEGER     NOT NULL,
			channels   TEXT        NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS mmm_weeks (
			run_id     CHAR(36)         NOT NULL REFERENCES mmm_runs(run_id),
			week_index INTEGER          NOT NULL,
			week       VARCHAR(10)      NOT NULL,
			sales      DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (run_id, week_index)
		)`,
		`CREATE TABLE IF NOT EXISTS mmm_spend (
			run_id     CHAR(36)         NOT NULL REFERENCES mmm_runs(run_id),
			week_index INTEGER          NOT NULL,
			channel    VARCHAR(64)      NOT NULL,
			spend      DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (run_id, week_index, channel)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mmm_runs_created ON mmm_runs(created_at)`,
	},
}

// PostgresWriter persists generated datasets to PostgreSQL.
type PostgresWriter struct {
	*sqlWriter
}

// NewPostgresWriter opens a connection to PostgreSQL (retrying the initial
// ping per opts.Retry), runs schema migrations, and returns a ready-to-use
// PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, opts SQLOptions) (*PostgresWriter, error) {
	w, err := openSQL(ctx, postgresDialect, dsn, opts)
	if err != nil {
		return nil, err
	}
	return &PostgresWriter{sqlWriter: w}, nil
}
