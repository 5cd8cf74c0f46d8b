package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

// writeDump gzips header and rows into dir/name.
func writeDump(t *testing.T, dir, name, header string, rows ...string) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)

	body := header + "\n" + strings.Join(rows, "\n") + "\n"
	if _, err := zw.Write([]byte(body)); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing %s: %v", name, err)
	}
}

func row(cols ...string) string {
	return strings.Join(cols, "\t")
}

const (
	ratingsHeader    = "tconst\taverageRating\tnumVotes"
	titlesHeader     = "tconst\ttitleType\tprimaryTitle\toriginalTitle\tisAdult\tstartYear\tendYear\truntimeMinutes\tgenres"
	crewHeader       = "tconst\tdirectors\twriters"
	principalsHeader = "tconst\tordering\tnconst\tcategory\tjob\tcharacters"
	namesHeader      = "nconst\tprimaryName\tbirthYear\tdeathYear\tprimaryProfession\tknownForTitles"
)

// writeFixture lays down a small but complete set of dumps.
//
//	tt0001 150 votes, movie, 1994, Drama,Crime, directors nm0001,nm0002
//	tt0002  50 votes, below threshold
//	tt0003 300 votes, tvSeries
//	tt0004 200 votes, year \N
//	tt0005 votes "abc", malformed
//	tt0006 1000 votes, movie, 2001, no genres, no director
func writeFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	writeDump(t, dir, RatingsDump, ratingsHeader,
		row("tt0001", "8.0", "150"),
		row("tt0002", "5.0", "50"),
		row("tt0003", "7.0", "300"),
		row("tt0004", "6.5", "200"),
		row("tt0005", "7.5", "abc"),
		row("tt0006", "9.1", "1000"),
	)

	writeDump(t, dir, TitlesDump, titlesHeader,
		row("tt0001", "movie", "The First", "The First", "0", "1994", `\N`, "142", "Drama,Crime"),
		row("tt0002", "movie", "Too Obscure", "Too Obscure", "0", "1990", `\N`, "90", "Comedy"),
		row("tt0003", "tvSeries", "A Show", "A Show", "0", "2005", "2010", "45", "Drama"),
		row("tt0004", "movie", "Undated", "Undated", "0", `\N`, `\N`, "100", "Horror"),
		row("tt0006", "movie", "Sixth", "Sixth", "0", "2001", `\N`, "120", `\N`),
	)

	writeDump(t, dir, CrewDump, crewHeader,
		row("tt0001", "nm0001,nm0002", "nm0003"),
		row("tt0002", "nm0009", `\N`),
		row("tt0006", `\N`, `\N`),
	)

	writeDump(t, dir, PrincipalsDump, principalsHeader,
		row("tt0001", "1", "nm0010", "actor", `\N`, `["Andy"]`),
		row("tt0001", "2", "nm0011", "actress", `\N`, `["Ann"]`),
		row("tt0001", "3", "nm0099", "actor", `\N`, `["Ghost"]`),
		row("tt0001", "4", "nm0012", "composer", `\N`, `\N`),
		row("tt0001", "5", "nm0010", "actor", `\N`, `["Andy again"]`),
		row("tt0002", "1", "nm0013", "actor", `\N`, `["Nobody"]`),
		row("tt0006", "1", "nm0010", "actor", `\N`, `["Andy"]`),
	)

	writeDump(t, dir, NamesDump, namesHeader,
		row("nm0001", "Frank Director", "1959", `\N`, "director", "tt0001"),
		row("nm0002", "Second Director", "1960", `\N`, "director", "tt0001"),
		row("nm0010", "Andy Actor", "1958", `\N`, "actor", "tt0001"),
		row("nm0011", "Ann Actress", `\N`, `\N`, "actress", "tt0001"),
		row("nm0013", "Not Needed", "1970", `\N`, "actor", "tt0002"),
	)

	return dir
}

// memStore is an in-memory Store that enforces the catalog's foreign keys.
type memStore struct {
	stars       map[string]models.Star
	genres      map[string]int
	nextGenre   int
	movies      map[string]models.Movie
	cast        map[models.StarInMovie]bool
	movieGenres map[models.GenreInMovie]bool
	ratings     map[string]models.Rating

	calls  map[string]int
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		stars:       make(map[string]models.Star),
		genres:      make(map[string]int),
		movies:      make(map[string]models.Movie),
		cast:        make(map[models.StarInMovie]bool),
		movieGenres: make(map[models.GenreInMovie]bool),
		ratings:     make(map[string]models.Rating),
		calls:       make(map[string]int),
		failOn:      make(map[string]error),
	}
}

func (m *memStore) call(table string) error {
	m.calls[table]++
	return m.failOn[table]
}

func (m *memStore) writes() int {
	n := 0
	for table, c := range m.calls {
		if table != "list_genres" {
			n += c
		}
	}

	return n
}

func (m *memStore) UpsertStars(_ context.Context, stars []models.Star) error {
	if err := m.call(TableStars); err != nil {
		return err
	}

	for _, s := range stars {
		m.stars[s.ID] = s
	}

	return nil
}

func (m *memStore) ListGenres(_ context.Context) ([]models.Genre, error) {
	if err := m.call("list_genres"); err != nil {
		return nil, err
	}

	out := make([]models.Genre, 0, len(m.genres))
	for name, id := range m.genres {
		out = append(out, models.Genre{ID: id, Name: name})
	}

	return out, nil
}

func (m *memStore) InsertGenres(_ context.Context, names []string) ([]models.Genre, error) {
	if err := m.call(TableGenres); err != nil {
		return nil, err
	}

	out := make([]models.Genre, 0, len(names))
	for _, name := range names {
		id, ok := m.genres[name]
		if !ok {
			m.nextGenre++
			id = m.nextGenre
			m.genres[name] = id
		}

		out = append(out, models.Genre{ID: id, Name: name})
	}

	return out, nil
}

func (m *memStore) UpsertMovies(_ context.Context, movies []models.Movie) error {
	if err := m.call(TableMovies); err != nil {
		return err
	}

	for _, mv := range movies {
		m.movies[mv.ID] = mv
	}

	return nil
}

func (m *memStore) UpsertStarsInMovies(_ context.Context, links []models.StarInMovie) error {
	if err := m.call(TableStarsInMovie); err != nil {
		return err
	}

	for _, l := range links {
		if _, ok := m.movies[l.MovieID]; !ok {
			return fmt.Errorf("foreign key: movie %s", l.MovieID)
		}

		if _, ok := m.stars[l.StarID]; !ok {
			return fmt.Errorf("foreign key: star %s", l.StarID)
		}

		m.cast[l] = true
	}

	return nil
}

func (m *memStore) UpsertGenresInMovies(_ context.Context, links []models.GenreInMovie) error {
	if err := m.call(TableGenresMovie); err != nil {
		return err
	}

	for _, l := range links {
		if _, ok := m.movies[l.MovieID]; !ok {
			return fmt.Errorf("foreign key: movie %s", l.MovieID)
		}

		m.movieGenres[l] = true
	}

	return nil
}

func (m *memStore) UpsertRatings(_ context.Context, ratings []models.Rating) error {
	if err := m.call(TableRatings); err != nil {
		return err
	}

	inBatch := make(map[string]bool, len(ratings))

	for _, r := range ratings {
		if _, ok := m.movies[r.MovieID]; !ok {
			return fmt.Errorf("foreign key: movie %s", r.MovieID)
		}

		// ON CONFLICT DO UPDATE cannot touch the same row twice in one statement.
		if inBatch[r.MovieID] {
			return fmt.Errorf("cardinality violation: movie %s repeated in batch", r.MovieID)
		}

		inBatch[r.MovieID] = true

		m.ratings[r.MovieID] = r
	}

	return nil
}
