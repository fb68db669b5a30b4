package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"mmm-datagen/models"
	"mmm-datagen/utils"
)

const defaultBatchSize = 500

// SQLOptions tunes the SQL sinks.
type SQLOptions struct {
	BatchSize int
	Progress  io.Writer // progress bar destination; nil disables it
	Retry     *utils.RetryConfig
	Logger    *utils.Logger
}

// dialect captures what differs between the SQL backends.
type dialect struct {
	name        string
	driver      string
	schema      []string
	placeholder func(n int) string
}

func questionMark(int) string { return "?" }

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

// sqlWriter persists datasets as runs: one mmm_runs row per Write, plus one
// mmm_weeks row per week and one mmm_spend row per (week, channel).
type sqlWriter struct {
	db     *sql.DB
	d      dialect
	opts   SQLOptions
	logger *utils.Logger
}

func openSQL(ctx context.Context, d dialect, dsn string, opts SQLOptions) (*sqlWriter, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	if opts.Retry == nil {
		opts.Retry = &utils.RetryConfig{MaxAttempts: 1, Logger: opts.Logger}
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", d.name, err)
	}

	err = opts.Retry.Do(ctx, d.name+" ping", func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", d.name, err)
	}

	w := &sqlWriter{db: db, d: d, opts: opts, logger: opts.Logger}
	if err := w.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: migrate: %w", d.name, err)
	}
	return w, nil
}

func (w *sqlWriter) migrate(ctx context.Context) error {
	for _, stmt := range w.d.schema {
		if _, err := w.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Write stores ds as a new run.
func (w *sqlWriter) Write(ctx context.Context, ds *models.Dataset) error {
	_, err := w.WriteRun(ctx, ds)
	return err
}

// WriteRun stores ds under a fresh run ID inside one transaction and
// returns that ID.
func (w *sqlWriter) WriteRun(ctx context.Context, ds *models.Dataset) (uuid.UUID, error) {
	runID := uuid.New()
	start := time.Now()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: begin: %w", w.d.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	names := make([]string, len(ds.Channels))
	for i, c := range ds.Channels {
		names[i] = c.Name
	}
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO mmm_runs (run_id, seed, weeks, channels) VALUES (%s, %s, %s, %s)",
			w.d.placeholder(1), w.d.placeholder(2), w.d.placeholder(3), w.d.placeholder(4)),
		runID.String(), ds.Seed, ds.Len(), strings.Join(names, ","))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: insert run: %w", w.d.name, err)
	}

	bar := w.progressBar(ds.Len()*(1+len(ds.Channels)), "[storage] "+w.d.name)

	weekRows := make([][]any, ds.Len())
	spendRows := make([][]any, 0, ds.Len()*len(ds.Channels))
	for i := 0; i < ds.Len(); i++ {
		weekRows[i] = []any{runID.String(), i, ds.Weeks[i].Format(models.WeekLayout), ds.Sales[i]}
		for _, c := range ds.Channels {
			spendRows = append(spendRows, []any{runID.String(), i, c.Name, c.Spend[i]})
		}
	}

	if err := w.insertBatches(ctx, tx, "mmm_weeks", []string{"run_id", "week_index", "week", "sales"}, weekRows, bar); err != nil {
		return uuid.Nil, err
	}
	if err := w.insertBatches(ctx, tx, "mmm_spend", []string{"run_id", "week_index", "channel", "spend"}, spendRows, bar); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("%s: commit: %w", w.d.name, err)
	}
	_ = bar.Finish()

	w.logger.Debug("[storage] %s run %s stored in %v", w.d.name, runID, time.Since(start))
	return runID, nil
}

func (w *sqlWriter) progressBar(total int, description string) *progressbar.ProgressBar {
	if w.opts.Progress == nil {
		return progressbar.DefaultSilent(int64(total), description)
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w.opts.Progress),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (w *sqlWriter) insertBatches(ctx context.Context, tx *sql.Tx, table string, cols []string, rows [][]any, bar *progressbar.ProgressBar) error {
	size := w.opts.BatchSize
	for i := 0; i < len(rows); i += size {
		end := i + size
		if end > len(rows) {
			end = len(rows)
		}
		if err := w.insertBatch(ctx, tx, table, cols, rows[i:end]); err != nil {
			return fmt.Errorf("%s: insert %s: %w", w.d.name, table, err)
		}
		_ = bar.Add(end - i)
	}
	return nil
}

func (w *sqlWriter) insertBatch(ctx context.Context, tx *sql.Tx, table string, cols []string, batch [][]any) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*len(cols))

	n := 1
	for _, row := range batch {
		ph := make([]string, len(row))
		for j := range row {
			ph[j] = w.d.placeholder(n)
			n++
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(cols, ", "), strings.Join(valueStrings, ","))

	_, err := tx.ExecContext(ctx, query, valueArgs...)
	return err
}

// FetchRun reads a stored run back into a Dataset, weeks ascending and
// channels in their original order.
func (w *sqlWriter) FetchRun(ctx context.Context, runID uuid.UUID) (*models.Dataset, error) {
	p := w.d.placeholder(1)

	var (
		seed     int64
		weeks    int
		channels string
	)
	err := w.db.QueryRowContext(ctx,
		"SELECT seed, weeks, channels FROM mmm_runs WHERE run_id = "+p, runID.String()).
		Scan(&seed, &weeks, &channels)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch run %s: %w", w.d.name, runID, err)
	}

	ds := &models.Dataset{
		Seed:  seed,
		Weeks: make([]time.Time, weeks),
		Sales: make([]float64, weeks),
	}
	index := make(map[string]int)
	if channels != "" {
		for i, name := range strings.Split(channels, ",") {
			index[name] = i
			ds.Channels = append(ds.Channels, models.ChannelSpend{Name: name, Spend: make([]float64, weeks)})
		}
	}

	rows, err := w.db.QueryContext(ctx,
		"SELECT week_index, week, sales FROM mmm_weeks WHERE run_id = "+p+" ORDER BY week_index", runID.String())
	if err != nil {
		return nil, fmt.Errorf("%s: fetch weeks: %w", w.d.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			i     int
			week  string
			sales float64
		)
		if err := rows.Scan(&i, &week, &sales); err != nil {
			return nil, fmt.Errorf("%s: scan week: %w", w.d.name, err)
		}
		if i < 0 || i >= weeks {
			return nil, fmt.Errorf("%s: week index %d out of range", w.d.name, i)
		}
		t, err := time.Parse(models.WeekLayout, week)
		if err != nil {
			return nil, fmt.Errorf("%s: parse week %q: %w", w.d.name, week, err)
		}
		ds.Weeks[i] = t
		ds.Sales[i] = sales
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	spendRows, err := w.db.QueryContext(ctx,
		"SELECT week_index, channel, spend FROM mmm_spend WHERE run_id = "+p+" ORDER BY week_index", runID.String())
	if err != nil {
		return nil, fmt.Errorf("%s: fetch spend: %w", w.d.name, err)
	}
	defer spendRows.Close()

	for spendRows.Next() {
		var (
			i       int
			channel string
			spend   float64
		)
		if err := spendRows.Scan(&i, &channel, &spend); err != nil {
			return nil, fmt.Errorf("%s: scan spend: %w", w.d.name, err)
		}
		c, ok := index[channel]
		if !ok || i < 0 || i >= weeks {
			return nil, fmt.Errorf("%s: unexpected spend row (%s, %d)", w.d.name, channel, i)
		}
		ds.Channels[c].Spend[i] = spend
	}
	return ds, spendRows.Err()
}

// DeleteRun removes every row of a stored run.
func (w *sqlWriter) DeleteRun(ctx context.Context, runID uuid.UUID) error {
	p := w.d.placeholder(1)
	for _, table := range []string{"mmm_spend", "mmm_weeks", "mmm_runs"} {
		if _, err := w.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE run_id = "+p, runID.String()); err != nil {
			return fmt.Errorf("%s: delete run from %s: %w", w.d.name, table, err)
		}
	}
	return nil
}

func (w *sqlWriter) Close() error {
	return w.db.Close()
}
