package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/persistorai/cinedex/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := newLogger(cfg.LogLevel, false)

			ctx, stop := signalContext()
			defer stop()

			pool, err := openPool(ctx, cfg, log, true)
			if err != nil {
				return err
			}
			defer pool.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", db.SchemaVersion())

			return nil
		},
	}
}
