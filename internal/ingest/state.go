package ingest

import (
	"strings"

	"github.com/persistorai/cinedex/internal/models"
)

// title is a movie that survived filtering, plus the links found for it
// in the crew and genre columns. movie.Director stays Unknown until load.
type title struct {
	movie      models.Movie
	directorID string
	genres     []string
}

// newTitle validates a titles row. genreField is the raw comma-separated
// list; the null marker and repeated names collapse to a distinct set.
func newTitle(id, name string, year int, genreField string) (*title, error) {
	m, err := models.NewMovie(id, name, year, "")
	if err != nil {
		return nil, err
	}

	return &title{movie: m, genres: parseGenres(genreField)}, nil
}

func parseGenres(field string) []string {
	if field == "" || field == nullField {
		return nil
	}

	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if _, dup := seen[p]; dup {
			continue
		}

		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}

// credit is one cast pair from the principals dump.
type credit struct {
	movieID string
	starID  string
}

// runState is everything one Run accumulates between scans. It is created
// per run and dropped when the run returns.
type runState struct {
	// popular holds ids at or over the vote threshold; the titles scan
	// removes every id it rejects.
	popular map[string]struct{}
	// titles holds the materialized movies keyed by id.
	titles map[string]*title
	// needed holds every person id referenced as director or cast.
	needed map[string]struct{}
	cast   []credit
	seen   map[credit]struct{}
	// names holds the needed people found in the names dump.
	names map[string]models.Star
	// found holds the people handed to the store in the stars phase.
	found map[string]struct{}
	// genreIDs maps every genre name of a materialized movie to its stored id.
	genreIDs map[string]int
}

func newRunState() *runState {
	return &runState{
		popular: make(map[string]struct{}),
		titles:  make(map[string]*title),
		needed:  make(map[string]struct{}),
		seen:    make(map[credit]struct{}),
		names:   make(map[string]models.Star),
		found:   make(map[string]struct{}),
	}
}

func (s *runState) need(id string) {
	s.needed[id] = struct{}{}
}

// addCredit records a cast pair once. It reports whether the pair was new.
func (s *runState) addCredit(c credit) bool {
	if _, dup := s.seen[c]; dup {
		return false
	}

	s.seen[c] = struct{}{}
	s.cast = append(s.cast, c)
	s.need(c.starID)

	return true
}
