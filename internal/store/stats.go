package store

import (
	"context"
	"fmt"

	"github.com/persistorai/cinedex/internal/models"
)

// StatsStore reports catalog row counts.
type StatsStore struct {
	Base
}

// NewStatsStore creates a StatsStore with the given shared base.
func NewStatsStore(base Base) *StatsStore {
	return &StatsStore{Base: base}
}

// CatalogStats counts the rows of every catalog table in one snapshot.
func (s *StatsStore) CatalogStats(ctx context.Context) (*models.CatalogStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var st models.CatalogStats

	err := s.Pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM movies),
			(SELECT COUNT(*) FROM stars),
			(SELECT COUNT(*) FROM genres),
			(SELECT COUNT(*) FROM ratings),
			(SELECT COUNT(*) FROM stars_in_movies),
			(SELECT COUNT(*) FROM genres_in_movies)`,
	).Scan(&st.Movies, &st.Stars, &st.Genres, &st.Ratings, &st.CastLinks, &st.GenreLinks)
	if err != nil {
		return nil, fmt.Errorf("counting catalog rows: %w", err)
	}

	return &st, nil
}

// SchemaReady reports whether the catalog tables exist.
func (s *StatsStore) SchemaReady(ctx context.Context) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var ready bool

	err := s.Pool.QueryRow(ctx, `SELECT to_regclass('public.movies') IS NOT NULL`).Scan(&ready)
	if err != nil {
		return false, fmt.Errorf("checking schema: %w", err)
	}

	return ready, nil
}
