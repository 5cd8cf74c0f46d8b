package ingest

import (
	"fmt"
	"io"
	"time"

	"github.com/persistorai/cinedex/internal/metrics"
)

// Destination tables, in load order.
const (
	TableStars        = "stars"
	TableGenres       = "genres"
	TableMovies       = "movies"
	TableStarsInMovie = "stars_in_movies"
	TableGenresMovie  = "genres_in_movies"
	TableRatings      = "ratings"
)

var loadOrder = []string{
	TableStars, TableGenres, TableMovies, TableStarsInMovie, TableGenresMovie, TableRatings,
}

// Report summarizes one ingest run. Counters are run-local and are filled
// in as phases complete, so a failed run reports what was flushed before it stopped.
type Report struct {
	DataDir   string
	MinVotes  int
	BatchSize int

	RatingsRead    int
	Popular        int
	TitlesRead     int
	TitlesRejected int
	Movies         int
	Directed       int
	CastExtracted  int
	NamesNeeded    int
	NamesResolved  int

	// Written counts rows submitted to the store per table.
	Written map[string]int
	// ConflictBatches counts star batches skipped on a duplicate-key conflict.
	ConflictBatches int
	GenresExisting  int
	GenresCreated   int
	CastOrphans     int
	GenreMisses     int
	// DuplicateRatings counts repeated ratings rows for an already written movie.
	DuplicateRatings int
	// Malformed counts unparseable rows per dump file.
	Malformed map[string]int

	Duration time.Duration
	Err      error
}

func newReport(dataDir string, opts Options) *Report {
	return &Report{
		DataDir:   dataDir,
		MinVotes:  opts.MinVotes,
		BatchSize: opts.BatchSize,
		Written:   make(map[string]int),
		Malformed: make(map[string]int),
	}
}

func (r *Report) malformed(file string) {
	r.Malformed[file]++
	metrics.IngestMalformedRows.WithLabelValues(file).Inc()
}

func (r *Report) orphan() {
	r.CastOrphans++
	metrics.IngestOrphans.Inc()
}

// Print writes a human-readable summary of the run to w.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== cinedex Ingest Report ===")

	if r.DataDir != "" {
		fmt.Fprintf(w, "Source: %s\n", r.DataDir)
	}

	fmt.Fprintf(w, "Threshold: %d votes, batch size %d\n", r.MinVotes, r.BatchSize)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Ratings: %d read → %d popular\n", r.RatingsRead, r.Popular)
	fmt.Fprintf(w, "Titles: %d read → %d movies (%d rejected)\n", r.TitlesRead, r.Movies, r.TitlesRejected)
	fmt.Fprintf(w, "Relations: %d directed, %d cast pairs\n", r.Directed, r.CastExtracted)
	fmt.Fprintf(w, "Names: %d needed → %d resolved\n", r.NamesNeeded, r.NamesResolved)

	fmt.Fprintln(w, "\nWritten:")

	for _, table := range loadOrder {
		fmt.Fprintf(w, "  %-17s %d\n", table, r.Written[table])
	}

	fmt.Fprintf(w, "\nGenres: %d existing, %d created\n", r.GenresExisting, r.GenresCreated)

	if r.CastOrphans > 0 || r.GenreMisses > 0 || r.ConflictBatches > 0 || r.DuplicateRatings > 0 {
		fmt.Fprintf(w, "Skipped: %d cast orphans, %d genre misses, %d conflicted star batches, %d duplicate ratings\n",
			r.CastOrphans, r.GenreMisses, r.ConflictBatches, r.DuplicateRatings)
	}

	if len(r.Malformed) > 0 {
		fmt.Fprintln(w, "\nMalformed rows:")

		for _, file := range AllDumps {
			if n := r.Malformed[file]; n > 0 {
				fmt.Fprintf(w, "  %s: %d\n", file, n)
			}
		}
	}

	fmt.Fprintf(w, "\nDuration: %.1fs\n", r.Duration.Seconds())

	if r.Err != nil {
		fmt.Fprintf(w, "Status: FAILED: %v\n", r.Err)
	} else {
		fmt.Fprintln(w, "Status: SUCCESS")
	}
}
