package service

import (
	"context"
	"sync"

	"github.com/persistorai/cinedex/internal/models"
)

// mockMovieStore records calls and returns configured responses.
type mockMovieStore struct {
	mu    sync.Mutex
	calls []string

	listMovies   func(ctx context.Context, limit, offset int) ([]models.MovieSummary, bool, error)
	getMovie     func(ctx context.Context, id string) (*models.MovieDetail, error)
	searchMovies func(ctx context.Context, q string, limit int) ([]models.MovieSummary, error)
}

func (m *mockMovieStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockMovieStore) ListMovies(ctx context.Context, limit, offset int) ([]models.MovieSummary, bool, error) {
	m.record("ListMovies")
	return m.listMovies(ctx, limit, offset)
}

func (m *mockMovieStore) GetMovie(ctx context.Context, id string) (*models.MovieDetail, error) {
	m.record("GetMovie")
	return m.getMovie(ctx, id)
}

func (m *mockMovieStore) SearchMovies(ctx context.Context, q string, limit int) ([]models.MovieSummary, error) {
	m.record("SearchMovies")
	return m.searchMovies(ctx, q, limit)
}

// mockStatsStore returns configured stats.
type mockStatsStore struct {
	catalogStats func(ctx context.Context) (*models.CatalogStats, error)
}

func (m *mockStatsStore) CatalogStats(ctx context.Context) (*models.CatalogStats, error) {
	return m.catalogStats(ctx)
}
