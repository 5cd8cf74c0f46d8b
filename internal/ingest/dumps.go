package ingest

import "context"

// Dump file names as published by IMDb.
const (
	RatingsDump    = "title.ratings.tsv.gz"
	TitlesDump     = "title.basics.tsv.gz"
	CrewDump       = "title.crew.tsv.gz"
	PrincipalsDump = "title.principals.tsv.gz"
	NamesDump      = "name.basics.tsv.gz"
)

// AllDumps lists every file a run reads, in the order it first reads them.
var AllDumps = []string{RatingsDump, TitlesDump, CrewDump, PrincipalsDump, NamesDump}

// nullField is the literal IMDb uses for an absent value.
const nullField = `\N`

// Column positions per dump. Each *Cols constant is the minimum row width read.
const (
	ratingID    = 0
	ratingAvg   = 1
	ratingVotes = 2
	ratingCols  = 3

	titleID      = 0
	titleType    = 1
	titlePrimary = 2
	titleStart   = 5
	titleGenres  = 8
	titleCols    = 9

	crewID        = 0
	crewDirectors = 1
	crewCols      = 2

	principalTitle    = 0
	principalName     = 2
	principalCategory = 3
	principalCols     = 4

	nameID    = 0
	nameName  = 1
	nameBirth = 2
	nameCols  = 3
)

// Dumps reads dump files row by row.
type Dumps interface {
	// Check returns a *MissingInputError for the first named file that does not exist.
	Check(names ...string) error
	// Scan calls fn once per data row of the named dump, header excluded.
	// A non-nil error from fn stops the scan and is returned.
	Scan(ctx context.Context, name string, fn func(cols []string) error) error
}
