package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/config"
	"github.com/persistorai/cinedex/internal/db"
	"github.com/persistorai/cinedex/internal/db/migrations"
	"github.com/persistorai/cinedex/internal/dbpool"
)

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

// newLogger builds the process logger. JSON output is used by the server;
// the interactive commands log text to stderr.
func newLogger(level string, json bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if json {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// openPool connects to the catalog database and, when migrate is set,
// applies pending migrations before returning.
func openPool(ctx context.Context, cfg *config.Config, log *logrus.Logger, migrate bool) (*dbpool.Pool, error) {
	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if !migrate {
		return pool, nil
	}

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		pool.Close()

		return nil, err
	}

	return pool, nil
}
