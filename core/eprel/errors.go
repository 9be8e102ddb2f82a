package eprel

import (
	"errors"
	"fmt"
	"time"
)

// ErrAuth indicates the API rejected the configured key. Authentication
// failures are fatal for the whole run and are never retried.
var ErrAuth = errors.New("eprel: invalid or missing API key")

// RateLimitError indicates the API returned 429. The client sleeps for
// RetryAfter before retrying; the retry still counts against the budget.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("eprel: rate limit exceeded, retry after %s", e.RetryAfter)
}

// APIError is any other non-2xx response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("eprel: API error %d: %s", e.StatusCode, e.Body)
}
