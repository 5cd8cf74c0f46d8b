package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/persistorai/cinedex/internal/models"
)

// movieSummaryColumns lists the columns selected for list and search
// queries. Callers alias movies as m and left-join ratings as r.
const movieSummaryColumns = `m.id, m.title, m.year, m.director, r.rating, r.num_votes`

// scanMovieSummary scans a single row into a models.MovieSummary.
func scanMovieSummary(scan func(dest ...any) error) (*models.MovieSummary, error) {
	var m models.MovieSummary

	err := scan(
		&m.ID,
		&m.Title,
		&m.Year,
		&m.Director,
		&m.Rating,
		&m.NumVotes,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// collectMovieSummaries scans all rows into a summary slice.
func collectMovieSummaries(rows pgx.Rows) ([]models.MovieSummary, error) {
	movies := make([]models.MovieSummary, 0, 16)

	for rows.Next() {
		m, err := scanMovieSummary(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning movie row: %w", err)
		}

		movies = append(movies, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movie rows: %w", err)
	}

	return movies, nil
}

// collectGenres scans (id, name) rows.
func collectGenres(rows pgx.Rows) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, 32)

	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning genre row: %w", err)
		}

		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating genre rows: %w", err)
	}

	return genres, nil
}
