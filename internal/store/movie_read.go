package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/persistorai/cinedex/internal/models"
)

const defaultListLimit = 10

// MovieStore serves the read side of the catalog.
type MovieStore struct {
	Base
}

// NewMovieStore creates a MovieStore with the given shared base.
func NewMovieStore(base Base) *MovieStore {
	return &MovieStore{Base: base}
}

// ListMovies returns a page of movies, most voted first. The bool reports
// whether another page follows.
func (s *MovieStore) ListMovies(ctx context.Context, limit, offset int) ([]models.MovieSummary, bool, error) {
	limit, offset = clampPage(limit, offset, defaultListLimit)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT `+movieSummaryColumns+`
		 FROM movies m
		 LEFT JOIN ratings r ON r.movie_id = m.id
		 ORDER BY r.num_votes DESC NULLS LAST, m.id
		 LIMIT $1 OFFSET $2`,
		limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("querying movies: %w", err)
	}
	defer rows.Close()

	movies, err := collectMovieSummaries(rows)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(movies) > limit
	if hasMore {
		movies = movies[:limit]
	}

	return movies, hasMore, nil
}

// GetMovie returns a movie with its rating, cast and genres.
func (s *MovieStore) GetMovie(ctx context.Context, id string) (*models.MovieDetail, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting movie: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	row := tx.QueryRow(ctx,
		`SELECT `+movieSummaryColumns+`
		 FROM movies m
		 LEFT JOIN ratings r ON r.movie_id = m.id
		 WHERE m.id = $1`,
		id,
	)

	summary, err := scanMovieSummary(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrMovieNotFound
		}

		return nil, fmt.Errorf("scanning movie: %w", err)
	}

	detail := &models.MovieDetail{MovieSummary: *summary}

	if detail.Stars, err = s.movieStars(ctx, tx, id); err != nil {
		return nil, err
	}

	if detail.Genres, err = s.movieGenres(ctx, tx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *MovieStore) movieStars(ctx context.Context, tx pgx.Tx, movieID string) ([]models.StarRef, error) {
	rows, err := tx.Query(ctx,
		`SELECT s.id, s.name
		 FROM stars_in_movies sm
		 JOIN stars s ON s.id = sm.star_id
		 WHERE sm.movie_id = $1
		 ORDER BY s.name, s.id`,
		movieID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying movie stars: %w", err)
	}
	defer rows.Close()

	stars := make([]models.StarRef, 0, 8)

	for rows.Next() {
		var ref models.StarRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scanning movie star: %w", err)
		}

		stars = append(stars, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movie stars: %w", err)
	}

	return stars, nil
}

func (s *MovieStore) movieGenres(ctx context.Context, tx pgx.Tx, movieID string) ([]string, error) {
	rows, err := tx.Query(ctx,
		`SELECT g.name
		 FROM genres_in_movies gm
		 JOIN genres g ON g.id = gm.genre_id
		 WHERE gm.movie_id = $1
		 ORDER BY g.name`,
		movieID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying movie genres: %w", err)
	}
	defer rows.Close()

	genres, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning movie genres: %w", err)
	}

	return genres, nil
}
