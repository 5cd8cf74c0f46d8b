package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	DB          DBChecker
	Schema      SchemaChecker
	Movies      MovieRepository
	CORSOrigins []string
	Version     string
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB, the API is read-only
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size

	// catalogMaxAge is how long clients may cache catalog reads. The data
	// only changes when an ingest runs.
	catalogMaxAge = 60
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.DB, deps.Schema, log, deps.Version)
	movies := NewMovieHandler(deps.Movies, log)
	stats := NewStatsHandler(deps.Movies, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	catalog := api.Group("", middleware.CacheControl(catalogMaxAge))

	// The static search route wins over :id in gin's tree.
	catalog.GET("/movies", movies.List)
	catalog.GET("/movies/search", movies.Search)
	catalog.GET("/movies/:id", movies.Get)

	catalog.GET("/stats", stats.GetStats)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})

	return r
}
