package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the structured error body returned by the cinedex API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
	// RetryAfter carries the Retry-After header of a 429 response.
	RetryAfter string `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("cinedex: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}

	return fmt.Sprintf("cinedex: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func hasStatus(err error, status int) bool {
	var e *APIError

	return errors.As(err, &e) && e.StatusCode == status
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsBadRequest reports whether err is a 400 from the API.
func IsBadRequest(err error) bool { return hasStatus(err, http.StatusBadRequest) }

// IsRateLimited reports whether err is a 429 from the API.
func IsRateLimited(err error) bool { return hasStatus(err, http.StatusTooManyRequests) }

// parseAPIError decodes a JSON error body and falls back to the raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}

	return apiErr
}
