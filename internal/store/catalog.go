package store

import (
	"context"
	"fmt"

	"github.com/persistorai/cinedex/internal/models"
)

var (
	starsUpsert = upsertSpec{
		table:   "stars",
		columns: []string{"id", "name", "birth_year"},
		conflict: `ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
				birth_year = EXCLUDED.birth_year`,
	}

	moviesUpsert = upsertSpec{
		table:   "movies",
		columns: []string{"id", "title", "year", "director"},
		conflict: `ON CONFLICT (id) DO UPDATE
			SET title = EXCLUDED.title,
				year = EXCLUDED.year,
				director = EXCLUDED.director`,
	}

	starsInMoviesUpsert = upsertSpec{
		table:    "stars_in_movies",
		columns:  []string{"movie_id", "star_id"},
		conflict: `ON CONFLICT (movie_id, star_id) DO NOTHING`,
	}

	genresInMoviesUpsert = upsertSpec{
		table:    "genres_in_movies",
		columns:  []string{"movie_id", "genre_id"},
		conflict: `ON CONFLICT (movie_id, genre_id) DO NOTHING`,
	}

	ratingsUpsert = upsertSpec{
		table:   "ratings",
		columns: []string{"movie_id", "rating", "num_votes"},
		conflict: `ON CONFLICT (movie_id) DO UPDATE
			SET rating = EXCLUDED.rating,
				num_votes = EXCLUDED.num_votes`,
	}
)

// CatalogStore writes ingested catalog rows. Every write is an upsert
// keyed on the natural id, so repeating a batch is harmless.
type CatalogStore struct {
	Base
}

// NewCatalogStore creates a CatalogStore with the given shared base.
func NewCatalogStore(base Base) *CatalogStore {
	return &CatalogStore{Base: base}
}

// UpsertStars inserts or updates stars by id.
func (s *CatalogStore) UpsertStars(ctx context.Context, stars []models.Star) error {
	return bulkUpsert(ctx, &s.Base, starsUpsert, stars, func(st models.Star) []any {
		return []any{st.ID, st.Name, st.BirthYear}
	})
}

// UpsertMovies inserts or updates movies by id.
func (s *CatalogStore) UpsertMovies(ctx context.Context, movies []models.Movie) error {
	return bulkUpsert(ctx, &s.Base, moviesUpsert, movies, func(m models.Movie) []any {
		return []any{m.ID, m.Title, m.Year, m.Director}
	})
}

// UpsertStarsInMovies inserts cast links, ignoring ones that already exist.
func (s *CatalogStore) UpsertStarsInMovies(ctx context.Context, links []models.StarInMovie) error {
	return bulkUpsert(ctx, &s.Base, starsInMoviesUpsert, links, func(l models.StarInMovie) []any {
		return []any{l.MovieID, l.StarID}
	})
}

// UpsertGenresInMovies inserts genre links, ignoring ones that already exist.
func (s *CatalogStore) UpsertGenresInMovies(ctx context.Context, links []models.GenreInMovie) error {
	return bulkUpsert(ctx, &s.Base, genresInMoviesUpsert, links, func(l models.GenreInMovie) []any {
		return []any{l.MovieID, l.GenreID}
	})
}

// UpsertRatings inserts or updates ratings by movie id.
func (s *CatalogStore) UpsertRatings(ctx context.Context, ratings []models.Rating) error {
	return bulkUpsert(ctx, &s.Base, ratingsUpsert, ratings, func(r models.Rating) []any {
		return []any{r.MovieID, r.Rating, r.NumVotes}
	})
}

// ListGenres returns every stored genre ordered by id.
func (s *CatalogStore) ListGenres(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying genres: %w", err)
	}
	defer rows.Close()

	return collectGenres(rows)
}

// InsertGenres creates the named genres and returns the id of every name
// given. A name that already exists keeps its id.
func (s *CatalogStore) InsertGenres(ctx context.Context, names []string) ([]models.Genre, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// The no-op update makes RETURNING include names that already existed.
	rows, err := s.Pool.Query(ctx,
		`INSERT INTO genres (name)
		 SELECT DISTINCT unnest($1::text[])
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`,
		names,
	)
	if err != nil {
		return nil, mapWriteError("genres", fmt.Errorf("inserting genres: %w", err))
	}
	defer rows.Close()

	genres, err := collectGenres(rows)
	if err != nil {
		return nil, mapWriteError("genres", err)
	}

	return genres, nil
}
