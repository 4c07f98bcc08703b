package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Varun5711/bookmarkd/internal/metrics"
)

// Metrics records request latency labelled by the matched route pattern, not
// the raw path, to keep label cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := recorderFor(w)

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(r.Method, route, strconv.Itoa(rec.Status()), time.Since(start))
	})
}
