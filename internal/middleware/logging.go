package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	pkglogger "github.com/srpnetwork/realty-api/pkg/logger"
)

// SecureLogger logs one line per request. Query strings carrying credentials
// or emails are dropped wholesale rather than partially scrubbed.
func SecureLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			path := r.URL.Path
			switch {
			case pkglogger.SanitizeQueryString(r.URL.RawQuery):
				path += "?[REDACTED]"
			case r.URL.RawQuery != "":
				path += "?" + r.URL.RawQuery
			}

			logger.LogAttrs(r.Context(), slog.LevelInfo, "http_request",
				slog.String("method", r.Method),
				slog.String("path", path),
				slog.Int("status", ww.Status()),
				slog.Int64("bytes", int64(ww.BytesWritten())),
				slog.String("duration", time.Since(start).String()),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
