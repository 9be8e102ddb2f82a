package eprel

import "time"

// DefaultBaseURL is the public EPREL API root.
const DefaultBaseURL = "https://eprel.ec.europa.eu/api/public"

// MaxPageSize is the maximum items per request accepted by the API.
const MaxPageSize = 100

// Config holds configuration for the EPREL API client.
type Config struct {
	// Key is the EPREL API key sent in the x-api-key header.
	Key string `mapstructure:"key" default:""`
	// BaseURL is the root URL of the EPREL public API.
	BaseURL string `mapstructure:"base_url" default:"https://eprel.ec.europa.eu/api/public"`
	// PageSize is the number of items requested per page (capped at 100).
	PageSize int `mapstructure:"page_size" default:"100"`
	// RequestDelayMs is the minimum interval between outbound requests in milliseconds.
	RequestDelayMs int `mapstructure:"request_delay_ms" default:"500"`
	// MaxRetries is the total attempt budget for a single logical request.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// TimeoutSeconds is the per-request HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// RequestDelay returns the configured minimum inter-request interval.
func (c Config) RequestDelay() time.Duration {
	if c.RequestDelayMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}
