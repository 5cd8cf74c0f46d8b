package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/cinedex/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(t *testing.T, ratePerSec, burst int) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := gin.New()
	r.Use(middleware.NewRateLimiter(ctx, ratePerSec, burst).Handler())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func getFrom(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)

	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	r := newLimitedRouter(t, 10, 5)

	if w := getFrom(r, "1.2.3.4:1234"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRateLimiter_BlocksExceedingLimit(t *testing.T) {
	r := newLimitedRouter(t, 1, 2)

	for i := range 3 {
		w := getFrom(r, "1.2.3.4:1234")

		if i < 2 && w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}

		if i == 2 {
			if w.Code != http.StatusTooManyRequests {
				t.Fatalf("request %d: expected 429, got %d", i, w.Code)
			}

			if got := w.Header().Get("Retry-After"); got != "1" {
				t.Errorf("Retry-After = %q, want 1", got)
			}
		}
	}
}

func TestRateLimiter_RejectedRequestsDoNotConsumeTokens(t *testing.T) {
	r := newLimitedRouter(t, 1, 1)

	getFrom(r, "9.9.9.9:1")

	for range 5 {
		if w := getFrom(r, "9.9.9.9:1"); w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", w.Code)
		}
	}

	// A cancelled reservation returns its token, so the wait stays at one second.
	if got := getFrom(r, "9.9.9.9:1").Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
}

func TestRateLimiter_IndependentBuckets(t *testing.T) {
	r := newLimitedRouter(t, 1, 1)

	getFrom(r, "1.1.1.1:1000")

	if w := getFrom(r, "2.2.2.2:1000"); w.Code != http.StatusOK {
		t.Fatalf("different IP should not be rate limited, got %d", w.Code)
	}
}

func TestRateLimiter_TokensRefillOverTime(t *testing.T) {
	// High rate so even tiny elapsed time refills tokens.
	r := newLimitedRouter(t, 1_000_000, 2)

	for range 2 {
		getFrom(r, "5.5.5.5:1000")
	}

	if w := getFrom(r, "5.5.5.5:1000"); w.Code != http.StatusOK {
		t.Fatalf("expected tokens to refill, got %d", w.Code)
	}
}
