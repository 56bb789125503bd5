// Package telemetry holds the Prometheus collectors exported on /metrics.
package telemetry

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GeneratorRecords counts synthetic records written, by kind.
	GeneratorRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arc",
			Name:      "generator_records_total",
			Help:      "Total number of synthetic records written by the generator",
		},
		[]string{"kind"},
	)

	// GeneratorErrors counts failed generator writes, by kind.
	GeneratorErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arc",
			Name:      "generator_errors_total",
			Help:      "Total number of failed generator writes",
		},
		[]string{"kind"},
	)

	// EventsPublished counts records fanned out to the event broker.
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arc",
			Name:      "events_published_total",
			Help:      "Total number of events published to the broker",
		},
		[]string{"kind", "outcome"},
	)

	// AuthAttempts counts auth operations by outcome.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arc",
			Name:      "auth_attempts_total",
			Help:      "Total number of authentication operations",
		},
		[]string{"operation", "outcome"},
	)

	// RequestDuration observes HTTP handler latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arc",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	once sync.Once
)

// Init registers all collectors with the default registry. Safe to call more
// than once.
func Init() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(GeneratorRecords)
		prometheus.DefaultRegisterer.Register(GeneratorErrors)
		prometheus.DefaultRegisterer.Register(EventsPublished)
		prometheus.DefaultRegisterer.Register(AuthAttempts)
		prometheus.DefaultRegisterer.Register(RequestDuration)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware observes request latency labelled by the matched chi route
// pattern, so path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
