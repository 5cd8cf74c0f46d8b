package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/persistorai/cinedex/internal/models"
	"github.com/persistorai/cinedex/internal/store"
)

var errSchemaMissing = errors.New("catalog schema not applied; run cinedex migrate")

func newStatsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print row counts for every catalog table",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateFormat(format)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := newLogger(cfg.LogLevel, false)

			ctx, stop := signalContext()
			defer stop()

			pool, err := openPool(ctx, cfg, log, false)
			if err != nil {
				return err
			}
			defer pool.Close()

			stats := store.NewStatsStore(store.Base{Pool: pool, Log: log})

			ready, err := stats.SchemaReady(ctx)
			if err != nil {
				return err
			}
			if !ready {
				return errSchemaMissing
			}

			st, err := stats.CatalogStats(ctx)
			if err != nil {
				return err
			}

			return writeStats(cmd.OutOrStdout(), st, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}

func writeStats(w io.Writer, st *models.CatalogStats, format string) error {
	if format == "json" {
		return formatJSON(w, st)
	}

	rows := [][]string{
		{"stars", strconv.Itoa(st.Stars)},
		{"genres", strconv.Itoa(st.Genres)},
		{"movies", strconv.Itoa(st.Movies)},
		{"stars_in_movies", strconv.Itoa(st.CastLinks)},
		{"genres_in_movies", strconv.Itoa(st.GenreLinks)},
		{"ratings", strconv.Itoa(st.Ratings)},
	}
	formatTable(w, []string{"TABLE", "ROWS"}, rows)

	return nil
}
