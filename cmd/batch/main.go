package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wiki-resolver-go/internal/aggregator"
	"wiki-resolver-go/internal/app"
	"wiki-resolver-go/internal/config"
	"wiki-resolver-go/internal/dataset"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		input      string
		output     string
		configPath string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Resolve a spreadsheet of concepts to Wikipedia articles",
		Long: `Reads queries from the first sheet of an xlsx file, resolves each one
against Wikipedia and writes a results/summary report.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Batch.Workers = workers
			}
			return run(cmd.Context(), cfg, input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "xlsx file with a query column")
	cmd.Flags().StringVarP(&output, "output", "o", "report.xlsx", "xlsx report to write")
	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "YAML config file")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent queries (overrides config)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, input, output string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	log := a.Log.WithField("component", "batch")

	queries, err := dataset.LoadQueries(input)
	if err != nil {
		return fmt.Errorf("load queries: %w", err)
	}
	log.WithField("queries", len(queries)).WithField("workers", cfg.Batch.Workers).Info("batch started")

	start := time.Now()
	results, err := a.Processor.ProcessBatch(ctx, queries)
	if err != nil {
		return err
	}

	summary := aggregator.Aggregate(results)
	if err := dataset.WriteReport(output, results, summary); err != nil {
		return err
	}
	log.WithField("output", output).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		WithField("unambiguous", summary.Unambiguous).
		WithField("failed", summary.Failed).
		Info("batch finished")
	return nil
}
