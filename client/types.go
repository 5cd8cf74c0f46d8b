package client

// Movie is a movie as listed or searched.
type Movie struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Director string   `json:"director"`
	Rating   *float64 `json:"rating"`
	NumVotes *int     `json:"num_votes"`
}

// Star is a cast member reference on a movie detail.
type Star struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is a movie with its cast and genres.
type MovieDetail struct {
	Movie
	Stars  []Star   `json:"stars"`
	Genres []string `json:"genres"`
}

// MoviePage is one page of the movie list.
type MoviePage struct {
	Movies  []Movie `json:"movies"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
	HasMore bool    `json:"has_more"`
}

// SearchResult is the response of a title search.
type SearchResult struct {
	Movies []Movie `json:"movies"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
}

// ListOptions narrows a movie list request. Zero values use server defaults.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

// Stats holds row counts per catalog table.
type Stats struct {
	Movies     int `json:"movies"`
	Stars      int `json:"stars"`
	Genres     int `json:"genres"`
	Ratings    int `json:"ratings"`
	CastLinks  int `json:"cast_links"`
	GenreLinks int `json:"genre_links"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
