package middleware

import (
	"net/http"
	"strconv"
	"time"
)

type requestObserver interface {
	ObserveRequest(method, route, status string, seconds float64)
}

// Metrics labels requests by the mux pattern that matched, never the raw
// path, so ids in the URL do not blow up label cardinality.
func Metrics(obs requestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			obs.ObserveRequest(r.Method, route, strconv.Itoa(rec.status), time.Since(start).Seconds())
		})
	}
}
