package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler serves the catalog statistics endpoint.
type StatsHandler struct {
	repo MovieRepository
	log  *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given dependencies.
func NewStatsHandler(repo MovieRepository, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{repo: repo, log: log}
}

// GetStats handles GET /api/v1/stats and returns per-table row counts.
func (h *StatsHandler) GetStats(c *gin.Context) {
	st, err := h.repo.CatalogStats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("stats: counting catalog rows")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, st)
}
