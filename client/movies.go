package client

import (
	"context"
	"net/url"
	"strconv"
)

// MovieService wraps the /movies endpoints.
type MovieService struct {
	c *Client
}

// List returns one page of movies ordered by vote count.
func (s *MovieService) List(ctx context.Context, opts *ListOptions) (*MoviePage, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			params.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Search != "" {
			params.Set("search", opts.Search)
		}
	}

	var resp MoviePage
	if err := s.c.get(ctx, "/api/v1/movies", params, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Search runs a title search.
func (s *MovieService) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp SearchResult
	if err := s.c.get(ctx, "/api/v1/movies/search", params, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Get returns one movie with its cast and genres.
func (s *MovieService) Get(ctx context.Context, id string) (*MovieDetail, error) {
	var resp MovieDetail
	if err := s.c.get(ctx, "/api/v1/movies/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
