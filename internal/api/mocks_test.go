package api_test

import (
	"context"
	"errors"

	"github.com/persistorai/cinedex/internal/models"
)

// mockMovieRepo implements api.MovieRepository for testing.
type mockMovieRepo struct {
	listFn   func(ctx context.Context, page, limit int) (*models.MoviePage, error)
	searchFn func(ctx context.Context, q string, limit int) (*models.SearchResult, error)
	getFn    func(ctx context.Context, id string) (*models.MovieDetail, error)
	statsFn  func(ctx context.Context) (*models.CatalogStats, error)
}

var errNotMocked = errors.New("not mocked")

func (m *mockMovieRepo) ListMovies(ctx context.Context, page, limit int) (*models.MoviePage, error) {
	if m.listFn == nil {
		return nil, errNotMocked
	}

	return m.listFn(ctx, page, limit)
}

func (m *mockMovieRepo) SearchMovies(ctx context.Context, q string, limit int) (*models.SearchResult, error) {
	if m.searchFn == nil {
		return nil, errNotMocked
	}

	return m.searchFn(ctx, q, limit)
}

func (m *mockMovieRepo) GetMovie(ctx context.Context, id string) (*models.MovieDetail, error) {
	if m.getFn == nil {
		return nil, errNotMocked
	}

	return m.getFn(ctx, id)
}

func (m *mockMovieRepo) CatalogStats(ctx context.Context) (*models.CatalogStats, error) {
	if m.statsFn == nil {
		return nil, errNotMocked
	}

	return m.statsFn(ctx)
}

// mockChecker implements api.DBChecker and api.SchemaChecker.
type mockChecker struct {
	pingErr   error
	ready     bool
	schemaErr error
}

func (m *mockChecker) HealthCheck(context.Context) error { return m.pingErr }

func (m *mockChecker) SchemaReady(context.Context) (bool, error) { return m.ready, m.schemaErr }
