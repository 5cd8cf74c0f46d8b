package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=()"},
}

// SecurityHeaders sets the response headers every JSON response carries.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range securityHeaders {
			c.Header(h[0], h[1])
		}

		c.Next()
	}
}

// CacheControl marks responses as publicly cacheable for maxAge seconds.
// Error responses override it with no-store in httputil.RespondError.
func CacheControl(maxAge int) gin.HandlerFunc {
	value := "public, max-age=" + strconv.Itoa(maxAge)

	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
