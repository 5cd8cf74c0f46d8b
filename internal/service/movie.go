// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/metrics"
	"github.com/persistorai/cinedex/internal/models"
)

// Paging bounds for the movie list.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxOffset bounds how deep the list can be paged.
	MaxOffset = 100000

	// MaxSearchResults caps a single search response.
	MaxSearchResults = 50
)

// MovieStore is the data-access interface MovieService depends on.
type MovieStore interface {
	ListMovies(ctx context.Context, limit, offset int) ([]models.MovieSummary, bool, error)
	GetMovie(ctx context.Context, id string) (*models.MovieDetail, error)
	SearchMovies(ctx context.Context, q string, limit int) ([]models.MovieSummary, error)
}

// StatsStore reports catalog row counts.
type StatsStore interface {
	CatalogStats(ctx context.Context) (*models.CatalogStats, error)
}

// MovieService turns page numbers into offsets and shapes read responses.
type MovieService struct {
	store MovieStore
	stats StatsStore
	log   *logrus.Logger
}

// NewMovieService creates a MovieService.
func NewMovieService(store MovieStore, stats StatsStore, log *logrus.Logger) *MovieService {
	return &MovieService{store: store, stats: stats, log: log}
}

// NormalizePage applies defaults to out-of-range paging values. The page is
// clamped so its offset never exceeds MaxOffset.
func NormalizePage(page, limit int) (int, int) {
	if limit < 1 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	if page < 1 {
		page = DefaultPage
	}

	if maxPage := MaxOffset/limit + 1; page > maxPage {
		page = maxPage
	}

	return page, limit
}

// ListMovies returns the requested page of movies, most voted first.
func (s *MovieService) ListMovies(ctx context.Context, page, limit int) (*models.MoviePage, error) {
	page, limit = NormalizePage(page, limit)

	movies, hasMore, err := s.store.ListMovies(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &models.MoviePage{
		Movies:  nonNil(movies),
		Page:    page,
		Limit:   limit,
		HasMore: hasMore,
	}, nil
}

// SearchMovies runs a title search. A blank query matches nothing.
func (s *MovieService) SearchMovies(ctx context.Context, q string, limit int) (*models.SearchResult, error) {
	if limit < 1 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	q = strings.TrimSpace(q)
	if q == "" {
		return &models.SearchResult{Movies: []models.MovieSummary{}, Limit: limit}, nil
	}

	movies, err := s.store.SearchMovies(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	return &models.SearchResult{Movies: nonNil(movies), Total: len(movies), Limit: limit}, nil
}

// GetMovie returns a movie detail. Cast and genres are never nil.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*models.MovieDetail, error) {
	m, err := s.store.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.Stars == nil {
		m.Stars = []models.StarRef{}
	}

	if m.Genres == nil {
		m.Genres = []string{}
	}

	return m, nil
}

// CatalogStats returns table counts and refreshes the catalog gauges.
func (s *MovieService) CatalogStats(ctx context.Context) (*models.CatalogStats, error) {
	st, err := s.stats.CatalogStats(ctx)
	if err != nil {
		return nil, err
	}

	metrics.MovieCount.Set(float64(st.Movies))
	metrics.StarCount.Set(float64(st.Stars))

	return st, nil
}

func nonNil(movies []models.MovieSummary) []models.MovieSummary {
	if movies == nil {
		return []models.MovieSummary{}
	}

	return movies
}
