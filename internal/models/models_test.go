package models_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/persistorai/cinedex/internal/models"
)

func ptr[T any](v T) *T { return &v }

func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func assertErrorContains(t *testing.T, err error, want string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}

	if !strings.Contains(err.Error(), want) {
		t.Errorf("expected error containing %q, got %q", want, err.Error())
	}
}

func TestNewMovie(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		title    string
		year     int
		director string
		wantErr  string
	}{
		{name: "valid", id: "tt0111161", title: "The Shawshank Redemption", year: 1994, director: "Frank Darabont"},
		{name: "missing id", title: "Heat", year: 1995, wantErr: "id is required"},
		{name: "id too long", id: strings.Repeat("t", 33), title: "Heat", year: 1995, wantErr: "exceeds maximum length"},
		{name: "blank title", id: "tt1", title: "   ", year: 1995, wantErr: "title is required"},
		{name: "year too early", id: "tt1", title: "Old", year: 1500, wantErr: "outside the range"},
		{name: "year too late", id: "tt1", title: "Future", year: 2500, wantErr: "outside the range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := models.NewMovie(tc.id, tc.title, tc.year, tc.director)
			if tc.wantErr != "" {
				assertErrorContains(t, err, tc.wantErr)
				return
			}
			assertNoError(t, err)
		})
	}
}

func TestNewMovie_Normalizes(t *testing.T) {
	long := strings.Repeat("é", 150)

	m, err := models.NewMovie("tt0000001", long, 2001, "")
	assertNoError(t, err)

	if got := utf8.RuneCountInString(m.Title); got != models.MaxTitleLength {
		t.Errorf("title length = %d runes, want %d", got, models.MaxTitleLength)
	}

	if !utf8.ValidString(m.Title) {
		t.Error("truncated title is not valid UTF-8")
	}

	if m.Director != models.UnknownDirector {
		t.Errorf("director = %q, want %q", m.Director, models.UnknownDirector)
	}
}

func TestTruncateTitle_ShortUnchanged(t *testing.T) {
	if got := models.TruncateTitle("Heat"); got != "Heat" {
		t.Errorf("TruncateTitle(Heat) = %q", got)
	}
}

func TestNewStar(t *testing.T) {
	s, err := models.NewStar("nm0000151", "Morgan Freeman", ptr(1937))
	assertNoError(t, err)

	if s.BirthYear == nil || *s.BirthYear != 1937 {
		t.Errorf("birth year = %v, want 1937", s.BirthYear)
	}

	_, err = models.NewStar("nm1", "", nil)
	if !errors.Is(err, models.ErrMissingName) {
		t.Errorf("expected ErrMissingName, got %v", err)
	}

	_, err = models.NewStar("", "Nobody", nil)
	if !errors.Is(err, models.ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
}

func TestNewStarInMovie(t *testing.T) {
	_, err := models.NewStarInMovie("tt1", "nm1")
	assertNoError(t, err)

	_, err = models.NewStarInMovie("", "nm1")
	if !errors.Is(err, models.ErrMissingMovieID) {
		t.Errorf("expected ErrMissingMovieID, got %v", err)
	}

	_, err = models.NewStarInMovie("tt1", "")
	if !errors.Is(err, models.ErrMissingStarID) {
		t.Errorf("expected ErrMissingStarID, got %v", err)
	}
}

func TestNewGenreInMovie(t *testing.T) {
	_, err := models.NewGenreInMovie("tt1", 3)
	assertNoError(t, err)

	_, err = models.NewGenreInMovie("tt1", 0)
	if !errors.Is(err, models.ErrInvalidGenreID) {
		t.Errorf("expected ErrInvalidGenreID, got %v", err)
	}
}

func TestNewRating(t *testing.T) {
	tests := []struct {
		name    string
		rating  float64
		votes   int
		wantErr string
	}{
		{name: "valid", rating: 8.0, votes: 150},
		{name: "zero", rating: 0, votes: 0},
		{name: "too high", rating: 10.5, votes: 10, wantErr: "outside the range"},
		{name: "negative votes", rating: 5, votes: -1, wantErr: "outside the range"},
		{name: "NaN", rating: math.NaN(), votes: 1, wantErr: "outside the range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := models.NewRating("tt1", tc.rating, tc.votes)
			if tc.wantErr != "" {
				assertErrorContains(t, err, tc.wantErr)
				return
			}
			assertNoError(t, err)
		})
	}
}
