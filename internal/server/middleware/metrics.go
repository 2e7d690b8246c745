package middleware

import (
	"net/http"
	"strconv"

	"github.com/iudanet/pwnedcheck/internal/server/metrics"
)

// MetricsMiddleware считает HTTP ответы по классу статуса (2xx, 4xx, ...)
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)
			m.HTTPRequests.WithLabelValues(strconv.Itoa(wrapped.statusCode/100) + "xx").Inc()
		})
	}
}
