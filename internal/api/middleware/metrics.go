package middleware

import (
	"net/http"
	"sync/atomic"
)

// Counters are the request totals reported by /metrics.
type Counters struct {
	Requests atomic.Int64
	Errors   atomic.Int64
	// Rejected counts 422 answers: evidence that parsed but could not be
	// fused, such as total conflict.
	Rejected atomic.Int64
}

// MetricsCollector collects request metrics.
type MetricsCollector struct {
	counters *Counters
}

func NewMetricsCollector(counters *Counters) *MetricsCollector {
	return &MetricsCollector{counters: counters}
}

// Middleware returns middleware that counts requests and errors.
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.counters.Requests.Add(1)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		if rw.statusCode >= 400 {
			mc.counters.Errors.Add(1)
		}
		if rw.statusCode == http.StatusUnprocessableEntity {
			mc.counters.Rejected.Add(1)
		}
	})
}
