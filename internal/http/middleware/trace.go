package middleware

import (
	"net/http"
	"time"

	"github.com/Claisenn/codemind/internal/observability"
)

// TraceHeader carries the trace ID in both directions.
const TraceHeader = "X-Trace-Id"

// RequestIDHeader carries the per-request ID in responses.
const RequestIDHeader = "X-Request-Id"

// Trace creates a middleware that injects trace ID and request ID into every
// request. An incoming X-Trace-Id is kept so callers can correlate requests.
func Trace() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = observability.GenerateTraceID()
			}
			ctx = observability.WithTraceID(ctx, traceID)

			requestID := observability.GenerateRequestID()
			ctx = observability.WithRequestID(ctx, requestID)

			w.Header().Set(TraceHeader, traceID)
			w.Header().Set(RequestIDHeader, requestID)

			contextLogger := observability.FromContext(ctx)
			contextLogger.Info("request started",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.String("remote_addr", r.RemoteAddr),
			)

			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))

			contextLogger.Info("request finished",
				observability.Duration("duration", time.Since(start)))
		})
	}
}
