package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/persistorai/cinedex/internal/config"
	"github.com/persistorai/cinedex/internal/ingest"
	"github.com/persistorai/cinedex/internal/metrics"
	"github.com/persistorai/cinedex/internal/store"
)

// Batch size bounds accepted on the command line, matching INGEST_BATCH_SIZE.
const (
	minBatchSize = 1
	maxBatchSize = 5000
)

const pushTimeout = 10 * time.Second

type ingestFlags struct {
	dataDir     string
	minVotes    int
	batchSize   int
	skipMigrate bool
}

func newIngestCmd() *cobra.Command {
	var f ingestFlags

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load the IMDb dataset dumps into the catalog",
		Long: "Scan the five IMDb .tsv.gz dumps in the data directory, keep titles at or\n" +
			"above the vote threshold and upsert them with their cast, genres and ratings.\n" +
			"A run summary is printed to stdout; the command exits 1 if the run failed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dir, opts, err := resolveIngest(cmd, cfg, f)
			if err != nil {
				return err
			}

			log := newLogger(cfg.LogLevel, false)

			ctx, stop := signalContext()
			defer stop()

			return runIngest(ctx, cmd, cfg, log, dir, opts, !f.skipMigrate)
		},
	}

	bindIngestFlags(cmd, &f)

	return cmd
}

func bindIngestFlags(cmd *cobra.Command, f *ingestFlags) {
	cmd.Flags().StringVar(&f.dataDir, "data-dir", "", "directory holding the dumps; overrides DATA_DIR")
	cmd.Flags().IntVar(&f.minVotes, "min-votes", ingest.DefaultMinVotes, "minimum vote count for a title to be kept; overrides INGEST_MIN_VOTES")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", ingest.DefaultBatchSize, "rows per write batch; overrides INGEST_BATCH_SIZE")
	cmd.Flags().BoolVar(&f.skipMigrate, "skip-migrate", false, "do not apply pending migrations first")
}

// resolveIngest merges explicitly set flags over the loaded configuration.
func resolveIngest(cmd *cobra.Command, cfg *config.Config, f ingestFlags) (string, ingest.Options, error) {
	dir := cfg.DataDir
	opts := ingest.Options{MinVotes: cfg.MinVotes, BatchSize: cfg.BatchSize}

	if cmd.Flags().Changed("data-dir") {
		dir = f.dataDir
	}

	if cmd.Flags().Changed("min-votes") {
		if f.minVotes < 1 {
			return "", opts, fmt.Errorf("--min-votes must be at least 1")
		}
		opts.MinVotes = f.minVotes
	}

	if cmd.Flags().Changed("batch-size") {
		if f.batchSize < minBatchSize || f.batchSize > maxBatchSize {
			return "", opts, fmt.Errorf("--batch-size must be between %d and %d", minBatchSize, maxBatchSize)
		}
		opts.BatchSize = f.batchSize
	}

	if dir == "" {
		return "", opts, fmt.Errorf("data directory must not be empty")
	}

	return dir, opts, nil
}

func runIngest(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log *logrus.Logger, dir string, opts ingest.Options, migrate bool) error {
	dumps := ingest.DumpDir{Path: dir}

	// Missing dumps are reported before any database work.
	if err := dumps.Check(ingest.AllDumps...); err != nil {
		return err
	}

	pool, err := openPool(ctx, cfg, log, migrate)
	if err != nil {
		return err
	}
	defer pool.Close()

	catalog := store.NewCatalogStore(store.Base{Pool: pool, Log: log})
	pipeline := ingest.NewPipeline(catalog, dumps, log, opts)

	rep, runErr := pipeline.Run(ctx)
	rep.Print(cmd.OutOrStdout())

	if cfg.PushgatewayURL != "" {
		pushIngestMetrics(cfg.PushgatewayURL, log)
	}

	return runErr
}

// pushIngestMetrics is best effort. The run has already finished, so it gets
// its own context.
func pushIngestMetrics(url string, log *logrus.Logger) {
	instance, _ := os.Hostname()

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := metrics.PushIngest(ctx, url, instance); err != nil {
		log.WithError(err).Warn("ingest metrics not pushed")

		return
	}

	log.WithField("pushgateway", url).Info("ingest metrics pushed")
}
