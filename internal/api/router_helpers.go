package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/middleware"
)

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

// maxQueryInt caps integer query parameters before they reach the service.
const maxQueryInt = 1_000_000

// parseInt returns the positive integer in s, capped at maxQueryInt, or
// fallback when s is missing, malformed or not positive.
func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	if v > maxQueryInt {
		return maxQueryInt
	}

	return v
}

// maxPathIDLength matches the longest IMDb identifier the catalog stores.
const maxPathIDLength = 32

// validatePathID checks that a path parameter ID is non-empty and within length limits.
func validatePathID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if len(id) > maxPathIDLength {
		return fmt.Errorf("id exceeds maximum length of %d", maxPathIDLength)
	}
	return nil
}
