// Package httputil provides shared HTTP response helpers.
package httputil

import "github.com/gin-gonic/gin"

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondError writes a standardized JSON error response and aborts the
// request. Error responses are never cached.
func RespondError(c *gin.Context, status int, code, message string) {
	body := ErrorBody{Code: code, Message: message}
	if rid, ok := c.Get("request_id"); ok {
		body.RequestID, _ = rid.(string)
	}

	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(status, body)
}
