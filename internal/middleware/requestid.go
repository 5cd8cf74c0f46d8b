package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// RequestIDHeader is the HTTP header used to propagate the request ID.
	RequestIDHeader = "X-Request-ID"

	clientRequestIDKey = "client_request_id"
)

// RequestID assigns every request a fresh server-side UUID and echoes it in
// the response header. A client supplied X-Request-ID is kept under a
// separate key and only logged.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			c.Set(clientRequestIDKey, clientID)
			log.WithFields(logrus.Fields{
				RequestIDKey:       id,
				clientRequestIDKey: clientID,
			}).Debug("mapped client request id")
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
