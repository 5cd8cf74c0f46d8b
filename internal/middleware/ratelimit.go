// Package middleware provides the gin middleware chain of the cinedex API.
package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// maxClients caps the number of tracked client IPs.
const maxClients = 100_000

// clientIdleTTL is how long an idle client keeps its limiter.
const clientIdleTTL = 10 * time.Minute

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter allowing ratePerSec requests per second
// with the given burst. Idle clients are evicted until ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(ratePerSec),
		burst:   burst,
	}
	go rl.evictLoop(ctx)

	return rl
}

func (rl *RateLimiter) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(clientIdleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > clientIdleTTL {
			delete(rl.clients, ip)
		}
	}
}

// reserve returns the limiter reservation for ip, or nil when the client
// table is full.
func (rl *RateLimiter) reserve(ip string, now time.Time) *rate.Reservation {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		if len(rl.clients) >= maxClients {
			return nil
		}

		cl = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now

	return cl.limiter.ReserveN(now, 1)
}

// Handler returns gin middleware that rejects clients over their rate with
// 429 and a Retry-After header.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// ClientIP ignores forwarding headers because the router trusts no proxies.
		now := time.Now()

		res := rl.reserve(c.ClientIP(), now)
		if res == nil {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")
			return
		}

		if delay := res.DelayFrom(now); delay > 0 {
			res.CancelAt(now)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
