package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"mmm-datagen/config"
	"mmm-datagen/generator"
	"mmm-datagen/models"
	"mmm-datagen/services"
	"mmm-datagen/storage"
	"mmm-datagen/utils"
)

type runOptions struct {
	Weeks int
	Seed  int64
}

// run generates one dataset with the fixed reference model and hands it to
// every configured sink. The dataset is complete before any sink is opened.
func run(ctx context.Context, cfg *config.Config, logger *utils.Logger, opts runOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Info("=== MMM data generation starting ===")
	logger.Info("Params: weeks %d | seed %d", opts.Weeks, opts.Seed)

	genCfg := generator.DefaultConfig()
	gen, err := generator.New(genCfg, logger)
	if err != nil {
		return err
	}

	ds, err := gen.Generate(opts.Seed, opts.Weeks)
	if err != nil {
		return err
	}
	if err := services.NewAuditor(logger, genCfg.SpendFloors()).Audit(ds); err != nil {
		return err
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		return err
	}
	defer csvWriter.Close()

	if err := csvWriter.Write(ctx, ds); err != nil {
		return fmt.Errorf("write %s: %w", cfg.CSVOutputPath, err)
	}
	logger.Info("Data generated successfully in %s", csvWriter.Path())

	var sinkErrs []error
	for _, s := range sqlSinks(cfg) {
		if err := writeSQL(ctx, s, cfg, logger, ds); err != nil {
			logger.Error("%s write failed: %v", s.name, err)
			sinkErrs = append(sinkErrs, err)
		}
	}

	if cfg.ShowReport {
		svc := services.NewInsightService(logger).WithOutput(out)
		svc.Print(svc.Generate(ds))
	}

	return errors.Join(sinkErrs...)
}

type sqlSink struct {
	name string
	open func(ctx context.Context, opts storage.SQLOptions) (storage.DatasetWriter, error)
}

func sqlSinks(cfg *config.Config) []sqlSink {
	var sinks []sqlSink
	if cfg.PostgresEnabled {
		sinks = append(sinks, sqlSink{"postgres", func(ctx context.Context, o storage.SQLOptions) (storage.DatasetWriter, error) {
			return storage.NewPostgresWriter(ctx, cfg.DSN(), o)
		}})
	}
	if cfg.MySQLDSN != "" {
		sinks = append(sinks, sqlSink{"mysql", func(ctx context.Context, o storage.SQLOptions) (storage.DatasetWriter, error) {
			return storage.NewMySQLWriter(ctx, cfg.MySQLDSN, o)
		}})
	}
	if cfg.SQLitePath != "" {
		sinks = append(sinks, sqlSink{"sqlite", func(ctx context.Context, o storage.SQLOptions) (storage.DatasetWriter, error) {
			return storage.NewSQLiteWriter(ctx, cfg.SQLitePath, o)
		}})
	}
	return sinks
}

func writeSQL(ctx context.Context, s sqlSink, cfg *config.Config, logger *utils.Logger, ds *models.Dataset) error {
	opts := storage.SQLOptions{
		BatchSize: cfg.BatchSize,
		Retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		Logger: logger,
	}
	if cfg.ShowProgress {
		opts.Progress = os.Stderr
	}

	w, err := s.open(ctx, opts)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Write(ctx, ds); err != nil {
		return err
	}
	logger.Info("Dataset stored in %s (%d weeks)", s.name, ds.Len())
	return nil
}
