package store

import (
	"context"
	"fmt"

	"github.com/persistorai/cinedex/internal/models"
)

const defaultSearchLimit = 50

// SearchMovies runs a full-text title search. q uses web search syntax
// ("quoted phrases", or, -negation). Results are ranked by text relevance,
// then by vote count.
func (s *MovieStore) SearchMovies(ctx context.Context, q string, limit int) ([]models.MovieSummary, error) {
	limit, _ = clampPage(limit, 0, defaultSearchLimit)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT `+movieSummaryColumns+`
		 FROM movies m
		 LEFT JOIN ratings r ON r.movie_id = m.id
		 WHERE m.title_tsv @@ websearch_to_tsquery('english', $1)
		 ORDER BY ts_rank(m.title_tsv, websearch_to_tsquery('english', $1)) DESC,
			r.num_votes DESC NULLS LAST, m.id
		 LIMIT $2`,
		q, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("executing full-text search: %w", err)
	}
	defer rows.Close()

	return collectMovieSummaries(rows)
}
