// Command cinedex ingests IMDb dataset dumps into Postgres and serves the
// resulting movie catalog over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persistorai/cinedex/internal/config"
	"github.com/persistorai/cinedex/internal/db"
)

var flagConfig string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cinedex",
		Short:        "cinedex: IMDb catalog ingestion and read API",
		Version:      config.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate("cinedex version {{.Version}}\n")

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (env vars take precedence)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newIngestCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newMoviesCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the binary and schema version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cinedex version %s (schema %d)\n", config.Version, db.SchemaVersion())
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
