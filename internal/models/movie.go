// Package models defines the catalog's stored records and API response types.
package models

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLength is the stored title length; longer titles are truncated.
	MaxTitleLength = 100

	// MinYear and MaxYear bound an acceptable release year.
	MinYear = 1870
	MaxYear = 2100

	// UnknownDirector is stored when a movie's director could not be resolved.
	UnknownDirector = "Unknown"

	maxIDLength = 32
)

// Movie is a row in the movies table.
type Movie struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Director string `json:"director"`
}

// NewMovie validates and normalizes a movie row. Titles longer than
// MaxTitleLength runes are truncated and an empty director becomes
// UnknownDirector.
func NewMovie(id, title string, year int, director string) (Movie, error) {
	if err := validateID(id); err != nil {
		return Movie{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Movie{}, ErrMissingTitle
	}

	if err := ValidateYear(year); err != nil {
		return Movie{}, err
	}

	if director == "" {
		director = UnknownDirector
	}

	return Movie{ID: id, Title: TruncateTitle(title), Year: year, Director: director}, nil
}

// ValidateYear reports whether year is a plausible release year.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return ErrOutOfRange("year", year, MinYear, MaxYear)
	}

	return nil
}

// TruncateTitle cuts a title to MaxTitleLength runes without splitting a character.
func TruncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= MaxTitleLength {
		return title
	}

	runes := []rune(title)

	return string(runes[:MaxTitleLength])
}

// Star is a row in the stars table. Directors and actors are both stars.
type Star struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year,omitempty"`
}

// NewStar validates a star row. birthYear may be nil.
func NewStar(id, name string, birthYear *int) (Star, error) {
	if err := validateID(id); err != nil {
		return Star{}, err
	}

	if strings.TrimSpace(name) == "" {
		return Star{}, ErrMissingName
	}

	return Star{ID: id, Name: name, BirthYear: birthYear}, nil
}

// Genre is a row in the genres table.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StarInMovie links a movie to one of its cast members.
type StarInMovie struct {
	MovieID string `json:"movie_id"`
	StarID  string `json:"star_id"`
}

// NewStarInMovie validates a cast link.
func NewStarInMovie(movieID, starID string) (StarInMovie, error) {
	if movieID == "" {
		return StarInMovie{}, ErrMissingMovieID
	}

	if starID == "" {
		return StarInMovie{}, ErrMissingStarID
	}

	return StarInMovie{MovieID: movieID, StarID: starID}, nil
}

// GenreInMovie links a movie to a genre.
type GenreInMovie struct {
	MovieID string `json:"movie_id"`
	GenreID int    `json:"genre_id"`
}

// NewGenreInMovie validates a genre link.
func NewGenreInMovie(movieID string, genreID int) (GenreInMovie, error) {
	if movieID == "" {
		return GenreInMovie{}, ErrMissingMovieID
	}

	if genreID <= 0 {
		return GenreInMovie{}, ErrInvalidGenreID
	}

	return GenreInMovie{MovieID: movieID, GenreID: genreID}, nil
}

// Rating is a row in the ratings table.
type Rating struct {
	MovieID  string  `json:"movie_id"`
	Rating   float64 `json:"rating"`
	NumVotes int     `json:"num_votes"`
}

// NewRating validates a rating row.
func NewRating(movieID string, rating float64, numVotes int) (Rating, error) {
	if movieID == "" {
		return Rating{}, ErrMissingMovieID
	}

	if math.IsNaN(rating) || rating < 0 || rating > 10 {
		return Rating{}, ErrOutOfRange("rating", rating, 0, 10)
	}

	if numVotes < 0 {
		return Rating{}, ErrOutOfRange("num_votes", numVotes, 0, "max")
	}

	return Rating{MovieID: movieID, Rating: rating, NumVotes: numVotes}, nil
}

func validateID(id string) error {
	if id == "" {
		return ErrMissingID
	}

	if len(id) > maxIDLength {
		return ErrFieldTooLong("id", maxIDLength)
	}

	return nil
}
