package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/models"
)

// maxQueryLength bounds a search query in characters.
const maxQueryLength = 200

// Query-string defaults for the movie list.
const (
	defaultPage        = 1
	defaultLimit       = 10
	defaultSearchLimit = 50
)

// MovieHandler serves the movie list, search and detail endpoints.
type MovieHandler struct {
	repo MovieRepository
	log  *logrus.Logger
}

// NewMovieHandler creates a MovieHandler with the given repository and logger.
func NewMovieHandler(repo MovieRepository, log *logrus.Logger) *MovieHandler {
	return &MovieHandler{repo: repo, log: log}
}

// List handles GET /api/v1/movies. A non-blank search parameter runs a
// title search and returns its matches as a single page.
func (h *MovieHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), defaultPage)
	limit := parseInt(c.Query("limit"), defaultLimit)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		if utf8.RuneCountInString(search) > maxQueryLength {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "query parameter search is too long")
			return
		}

		res, err := h.repo.SearchMovies(c.Request.Context(), search, limit)
		if err != nil {
			h.log.WithError(err).Error("searching movies")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

			return
		}

		c.JSON(http.StatusOK, models.MoviePage{Movies: res.Movies, Page: 1, Limit: res.Limit, HasMore: false})

		return
	}

	res, err := h.repo.ListMovies(c.Request.Context(), page, limit)
	if err != nil {
		h.log.WithError(err).Error("listing movies")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, res)
}

// Search handles GET /api/v1/movies/search?q=.
func (h *MovieHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "query parameter q is required")
		return
	}

	if utf8.RuneCountInString(q) > maxQueryLength {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "query parameter q is too long")
		return
	}

	limit := parseInt(c.Query("limit"), defaultSearchLimit)

	res, err := h.repo.SearchMovies(c.Request.Context(), q, limit)
	if err != nil {
		h.log.WithError(err).Error("searching movies")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"query": q, "results": res.Total}).Debug("movie search")

	c.JSON(http.StatusOK, res)
}

// Get handles GET /api/v1/movies/:id.
func (h *MovieHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	movie, err := h.repo.GetMovie(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrMovieNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "movie not found")

			return
		}

		h.log.WithError(err).WithField("movie_id", id).Error("getting movie")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, movie)
}
