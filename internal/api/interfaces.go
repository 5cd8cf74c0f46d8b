package api

import (
	"context"

	"github.com/persistorai/cinedex/internal/models"
)

// MovieRepository is the read side of the catalog the movie handlers use.
type MovieRepository interface {
	ListMovies(ctx context.Context, page, limit int) (*models.MoviePage, error)
	SearchMovies(ctx context.Context, q string, limit int) (*models.SearchResult, error)
	GetMovie(ctx context.Context, id string) (*models.MovieDetail, error)
	CatalogStats(ctx context.Context) (*models.CatalogStats, error)
}

// DBChecker reports database connectivity.
type DBChecker interface {
	HealthCheck(ctx context.Context) error
}

// SchemaChecker reports whether the catalog schema has been applied.
type SchemaChecker interface {
	SchemaReady(ctx context.Context) (bool, error)
}
