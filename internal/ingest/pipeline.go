// Package ingest loads IMDb dataset dumps into the catalog.
//
// A run streams five gzip TSV dumps in a fixed order, keeping only what
// later scans need: the ids over the vote threshold, the movies that
// survive the type and year filter, the people those movies reference and
// the names found for them. The loader then writes stars, genres, movies,
// both link tables and ratings, in that order, as batched upserts. Every
// write is keyed on a natural id, so an aborted run is recovered by running
// it again.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/metrics"
	"github.com/persistorai/cinedex/internal/models"
)

// Defaults applied to zero Options fields.
const (
	DefaultMinVotes  = 100
	DefaultBatchSize = 1000
)

// Store is the write side of the catalog used by the loader.
type Store interface {
	UpsertStars(ctx context.Context, stars []models.Star) error
	ListGenres(ctx context.Context) ([]models.Genre, error)
	InsertGenres(ctx context.Context, names []string) ([]models.Genre, error)
	UpsertMovies(ctx context.Context, movies []models.Movie) error
	UpsertStarsInMovies(ctx context.Context, links []models.StarInMovie) error
	UpsertGenresInMovies(ctx context.Context, links []models.GenreInMovie) error
	UpsertRatings(ctx context.Context, ratings []models.Rating) error
}

// Options tunes a run.
type Options struct {
	// MinVotes is the inclusive vote threshold for keeping a title.
	MinVotes int
	// BatchSize is the maximum number of rows per store call.
	BatchSize int
}

// Pipeline runs ingestion against one set of dumps and one store.
type Pipeline struct {
	store Store
	dumps Dumps
	log   *logrus.Logger
	opts  Options
}

// NewPipeline creates a Pipeline. Zero option fields take their defaults.
func NewPipeline(store Store, dumps Dumps, log *logrus.Logger, opts Options) *Pipeline {
	if opts.MinVotes <= 0 {
		opts.MinVotes = DefaultMinVotes
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	return &Pipeline{store: store, dumps: dumps, log: log, opts: opts}
}

type phase struct {
	name string
	run  func(ctx context.Context, st *runState, rep *Report) error
}

// Run performs one full ingestion. The returned report is never nil; on
// failure it carries the error and the counts reached before it.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	rep := newReport(p.dataDir(), p.opts)
	defer func() { rep.Duration = time.Since(start) }()

	if err := p.dumps.Check(AllDumps...); err != nil {
		p.log.WithError(err).Error("ingest aborted before any writes")
		rep.Err = err

		return rep, err
	}

	st := newRunState()

	phases := []phase{
		{"popularity", p.scanPopularity},
		{"titles", p.scanTitles},
		{"crew", p.scanCrew},
		{"principals", p.scanPrincipals},
		{"names", p.scanNames},
		{"load_stars", p.loadStars},
		{"load_genres", p.loadGenres},
		{"load_movies", p.loadMovies},
		{"load_stars_in_movies", p.loadCast},
		{"load_genres_in_movies", p.loadMovieGenres},
		{"load_ratings", p.loadRatings},
	}

	for i, ph := range phases {
		phaseStart := time.Now()
		log := p.log.WithFields(logrus.Fields{"phase": ph.name, "step": fmt.Sprintf("%d/%d", i+1, len(phases))})
		log.Info("phase started")

		if err := ph.run(ctx, st, rep); err != nil {
			log.WithError(err).Error("phase failed")
			rep.Err = fmt.Errorf("%s: %w", ph.name, err)

			return rep, rep.Err
		}

		elapsed := time.Since(phaseStart)
		metrics.IngestPhaseDuration.WithLabelValues(ph.name).Set(elapsed.Seconds())
		log.WithField("elapsed", elapsed.Round(time.Millisecond).String()).Info("phase complete")
	}

	metrics.IngestLastSuccess.SetToCurrentTime()

	return rep, nil
}

func (p *Pipeline) dataDir() string {
	if d, ok := p.dumps.(DumpDir); ok {
		return d.Path
	}

	return ""
}
