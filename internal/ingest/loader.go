package ingest

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/models"
)

// loadStars writes every needed person that has a name. A batch rejected
// with a duplicate-key conflict is skipped; those people already exist.
func (p *Pipeline) loadStars(ctx context.Context, st *runState, rep *Report) error {
	b := newBatcher(TableStars, p.opts.BatchSize, p.log, p.store.UpsertStars)
	b.tolerate = func(err error) bool { return errors.Is(err, models.ErrDuplicateKey) }

	for _, id := range slices.Sorted(maps.Keys(st.names)) {
		st.found[id] = struct{}{}

		if err := b.add(ctx, st.names[id]); err != nil {
			return err
		}
	}

	if err := b.close(ctx); err != nil {
		return err
	}

	rep.Written[TableStars] = b.rows
	rep.ConflictBatches = b.conflicts
	p.log.WithFields(logrus.Fields{
		"written":   b.rows,
		"found":     len(st.found),
		"conflicts": b.conflicts,
	}).Info("stars loaded")

	return nil
}

// loadGenres maps every genre name used by a materialized movie to its id,
// reusing ids already in the store and inserting only unseen names.
func (p *Pipeline) loadGenres(ctx context.Context, st *runState, rep *Report) error {
	ids, err := p.resolveGenres(ctx, st, rep)
	if err != nil {
		return err
	}

	st.genreIDs = ids
	rep.Written[TableGenres] = rep.GenresCreated
	p.log.WithFields(logrus.Fields{
		"existing": rep.GenresExisting,
		"created":  rep.GenresCreated,
	}).Info("genres loaded")

	return nil
}

func (p *Pipeline) resolveGenres(ctx context.Context, st *runState, rep *Report) (map[string]int, error) {
	wanted := make(map[string]struct{})
	for _, t := range st.titles {
		for _, g := range t.genres {
			wanted[g] = struct{}{}
		}
	}

	existing, err := p.store.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing genres: %w", err)
	}

	ids := make(map[string]int, len(existing)+len(wanted))
	for _, g := range existing {
		ids[g.Name] = g.ID
	}

	rep.GenresExisting = len(existing)

	var missing []string

	for _, name := range slices.Sorted(maps.Keys(wanted)) {
		if _, ok := ids[name]; !ok {
			missing = append(missing, name)
		}
	}

	batch := 0

	for chunk := range slices.Chunk(missing, p.opts.BatchSize) {
		batch++

		created, err := p.store.InsertGenres(ctx, chunk)
		if err != nil {
			return nil, &WriteError{Table: TableGenres, Batch: batch, Err: err}
		}

		for _, g := range created {
			ids[g.Name] = g.ID
		}

		rep.GenresCreated += len(created)
	}

	return ids, nil
}

// loadMovies writes one row per materialized movie with its director's name.
func (p *Pipeline) loadMovies(ctx context.Context, st *runState, rep *Report) error {
	b := newBatcher(TableMovies, p.opts.BatchSize, p.log, p.store.UpsertMovies)

	for _, id := range slices.Sorted(maps.Keys(st.titles)) {
		t := st.titles[id]

		m := t.movie
		if star, ok := st.names[t.directorID]; ok {
			m.Director = star.Name
		}

		if err := b.add(ctx, m); err != nil {
			return err
		}
	}

	if err := b.close(ctx); err != nil {
		return err
	}

	rep.Written[TableMovies] = b.rows
	p.log.WithField("written", b.rows).Info("movies loaded")

	return nil
}

// loadCast writes the cast pairs whose star was loaded; the rest are orphans.
func (p *Pipeline) loadCast(ctx context.Context, st *runState, rep *Report) error {
	b := newBatcher(TableStarsInMovie, p.opts.BatchSize, p.log, p.store.UpsertStarsInMovies)

	for _, c := range st.cast {
		if _, ok := st.found[c.starID]; !ok {
			rep.orphan()
			continue
		}

		link, err := models.NewStarInMovie(c.movieID, c.starID)
		if err != nil {
			rep.orphan()
			continue
		}

		if err := b.add(ctx, link); err != nil {
			return err
		}
	}

	if err := b.close(ctx); err != nil {
		return err
	}

	rep.Written[TableStarsInMovie] = b.rows
	p.log.WithFields(logrus.Fields{
		"written": b.rows,
		"orphans": rep.CastOrphans,
	}).Info("cast loaded")

	return nil
}

// loadMovieGenres links each movie to its genres through the map built by loadGenres.
func (p *Pipeline) loadMovieGenres(ctx context.Context, st *runState, rep *Report) error {
	b := newBatcher(TableGenresMovie, p.opts.BatchSize, p.log, p.store.UpsertGenresInMovies)

	for _, id := range slices.Sorted(maps.Keys(st.titles)) {
		for _, name := range st.titles[id].genres {
			genreID, ok := st.genreIDs[name]
			if !ok {
				rep.GenreMisses++
				p.log.WithFields(logrus.Fields{"movie": id, "genre": name}).Error("genre has no id after genre load")

				continue
			}

			link, err := models.NewGenreInMovie(id, genreID)
			if err != nil {
				rep.GenreMisses++
				continue
			}

			if err := b.add(ctx, link); err != nil {
				return err
			}
		}
	}

	if err := b.close(ctx); err != nil {
		return err
	}

	rep.Written[TableGenresMovie] = b.rows
	p.log.WithFields(logrus.Fields{
		"written": b.rows,
		"misses":  rep.GenreMisses,
	}).Info("movie genres loaded")

	return nil
}

// loadRatings re-reads the ratings dump and writes the rows of materialized
// movies. Only the first row per movie is written; repeats are counted and dropped.
func (p *Pipeline) loadRatings(ctx context.Context, st *runState, rep *Report) error {
	b := newBatcher(TableRatings, p.opts.BatchSize, p.log, p.store.UpsertRatings)
	seen := make(map[string]struct{}, len(st.titles))

	err := p.dumps.Scan(ctx, RatingsDump, func(cols []string) error {
		if len(cols) < ratingCols {
			return nil
		}

		id := cols[ratingID]
		if _, ok := st.titles[id]; !ok {
			return nil
		}

		if _, dup := seen[id]; dup {
			rep.DuplicateRatings++
			return nil
		}

		r, ok := parseRating(id, cols)
		if !ok {
			rep.malformed(RatingsDump)
			return nil
		}

		seen[id] = struct{}{}

		return b.add(ctx, r)
	})
	if err != nil {
		return err
	}

	if err := b.close(ctx); err != nil {
		return err
	}

	rep.Written[TableRatings] = b.rows
	p.log.WithFields(logrus.Fields{
		"written":    b.rows,
		"duplicates": rep.DuplicateRatings,
	}).Info("ratings loaded")

	return nil
}

func parseRating(id string, cols []string) (models.Rating, bool) {
	avg, err := strconv.ParseFloat(cols[ratingAvg], 64)
	if err != nil {
		return models.Rating{}, false
	}

	votes, err := strconv.Atoi(cols[ratingVotes])
	if err != nil {
		return models.Rating{}, false
	}

	r, err := models.NewRating(id, avg, votes)
	if err != nil {
		return models.Rating{}, false
	}

	return r, true
}
