package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mmm-datagen/config"
	"mmm-datagen/generator"
	"mmm-datagen/services"
	"mmm-datagen/storage"
	"mmm-datagen/utils"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := runOptions{}

	rootCmd := &cobra.Command{
		Use:   "mmm-datagen",
		Short: "Synthetic marketing-mix data generator",
		Long: `mmm-datagen simulates weekly TV and Search spend, passes it through
adstock and saturation, and composes a sales series with seasonality and
noise. The result is ground-truth data for testing MMM algorithms.

The same --seed and --weeks always produce the same dataset.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg)
			return run(cmd.Context(), cfg, logger, opts, cmd.OutOrStdout())
		},
	}

	rootCmd.Flags().IntVar(&opts.Weeks, "weeks", 156, "Number of weeks to simulate")
	rootCmd.Flags().Int64Var(&opts.Seed, "seed", 42, "Random seed")

	rootCmd.AddCommand(newReportCmd(), newVersionCmd())
	return rootCmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <csv>",
		Short: "Audit and summarise a previously generated CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg)

			ds, err := storage.ReadCSV(args[0])
			if err != nil {
				return err
			}
			floors := generator.DefaultConfig().SpendFloors()
			if err := services.NewAuditor(logger, floors).Audit(ds); err != nil {
				return err
			}

			svc := services.NewInsightService(logger).WithOutput(cmd.OutOrStdout())
			svc.Print(svc.Generate(ds))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				_ = json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mmm-datagen version %s\n", version)
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func newLogger(cfg *config.Config) *utils.Logger {
	return utils.NewLoggerWithOptions(utils.LoggerOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
}
