package models

// MovieSummary is a movie as returned by list and search queries.
type MovieSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Director string   `json:"director"`
	Rating   *float64 `json:"rating"`
	NumVotes *int     `json:"num_votes"`
}

// StarRef is a cast member as shown on a movie detail page.
type StarRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is a movie with its rating, cast, and genres.
type MovieDetail struct {
	MovieSummary
	Stars  []StarRef `json:"stars"`
	Genres []string  `json:"genres"`
}

// CatalogStats holds row counts for each catalog table.
type CatalogStats struct {
	Movies     int `json:"movies"`
	Stars      int `json:"stars"`
	Genres     int `json:"genres"`
	Ratings    int `json:"ratings"`
	CastLinks  int `json:"cast_links"`
	GenreLinks int `json:"genre_links"`
}

// MoviePage is one page of the movie list.
type MoviePage struct {
	Movies  []MovieSummary `json:"movies"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"has_more"`
}

// SearchResult holds the movies matching a search query.
type SearchResult struct {
	Movies []MovieSummary `json:"movies"`
	Total  int            `json:"total"`
	// Limit is the result cap that was applied to the query.
	Limit int `json:"limit"`
}
