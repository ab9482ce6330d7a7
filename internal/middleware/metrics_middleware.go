package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"tripbuilder/internal/metrics"
)

// MetricsMiddleware records request counts and latency per method and
// path. Variable path segments (row ids, CRM opportunity ids, trip
// public UUIDs) are collapsed so label cardinality stays bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := metricsPath(r.URL.Path)
		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method,
			path,
			strconv.Itoa(wrapped.statusCode),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method,
			path,
		).Observe(time.Since(start).Seconds())
	})
}

func metricsPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if variableSegment(seg) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

// variableSegment spots identifier-shaped segments: anything with a
// digit (serial ids, UUIDs) or long opaque tokens (CRM ids).
func variableSegment(seg string) bool {
	if len(seg) >= 20 {
		return true
	}
	return strings.ContainsAny(seg, "0123456789")
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
