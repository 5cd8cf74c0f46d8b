package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/persistorai/cinedex/internal/api"
	"github.com/persistorai/cinedex/internal/config"
	"github.com/persistorai/cinedex/internal/service"
	"github.com/persistorai/cinedex/internal/store"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and serve the read API and metrics",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := newLogger(cfg.LogLevel, true)

			ctx, stop := signalContext()
			defer stop()

			if err := runServe(ctx, cfg, log); err != nil {
				log.WithError(err).Error("server exited")

				return err
			}

			return nil
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	pool, err := openPool(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer pool.Close()

	base := store.Base{Pool: pool, Log: log}
	stats := store.NewStatsStore(base)
	movies := service.NewMovieService(store.NewMovieStore(base), stats, log)

	// Seed the catalog gauges; /stats keeps them fresh afterwards.
	if _, err := movies.CatalogStats(ctx); err != nil {
		log.WithError(err).Warn("could not read catalog stats at startup")
	}

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		DB:          pool,
		Schema:      stats,
		Movies:      movies,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
	})

	apiSrv := newHTTPServer(cfg.Addr(), router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := newHTTPServer(cfg.MetricsAddr(), metricsMux)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return listen(apiSrv, "api", log) })
	g.Go(func() error { return listen(metricsSrv, "metrics", log) })
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(apiSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// listen serves until Shutdown is called. A clean shutdown is not an error.
func listen(srv *http.Server, name string, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{"server": name, "addr": srv.Addr}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}

	return nil
}
