package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// Body served on 429. Matches the shape pkg/http writes everywhere else.
const rateLimitBody = `{"error":"rate_limit_exceeded","message":"Too many requests"}`

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int
}

// DefaultAuthRateLimit limits credential guessing on login/register
func DefaultAuthRateLimit() RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 5}
}

// DefaultSubmissionRateLimit limits the public contact/inquiry forms
func DefaultSubmissionRateLimit() RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 10}
}

// RateLimitByIP limits each client IP to config.RequestsPerMinute within a
// one-minute window. Keyed by real IP so proxies don't share a bucket.
func RateLimitByIP(config RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(rateLimitBody))
		}),
	)
}
