// Package metrics instruments the API with Prometheus.
//
// Wire it up once in the server bootstrap:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "showroom"

func counter(subsystem, name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func histogramVec(subsystem, name, help string, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
		Buckets: prometheus.DefBuckets,
	}, labels)
}

var (
	// HTTP surface.
	RequestDuration = histogramVec("http", "request_duration_seconds",
		"Duration of HTTP requests in seconds.", "method", "path", "status")
	RequestTotal = counterVec("http", "requests_total",
		"Total number of HTTP requests.", "method", "path", "status")
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "http", Name: "requests_in_flight",
		Help: "Number of HTTP requests currently being served.",
	})

	// Storefront domain.
	OrdersPlaced = counter("orders", "placed_total", "Total orders placed.")
	// Label "by" is "customer" or "admin".
	OrdersCancelled = counterVec("orders", "cancelled_total", "Total orders cancelled.", "by")
	ReviewsWritten  = counter("reviews", "written_total", "Total reviews submitted.")

	// Background queue. Label "status" is "success" or "failed".
	QueueJobsProcessed = counterVec("queue", "jobs_processed_total",
		"Total queue jobs processed.", "status")
	QueueJobDuration = histogramVec("queue", "job_duration_seconds",
		"Duration of queue job processing in seconds.", "job_type")

	// Catalog cache effectiveness.
	CacheHits   = counter("cache", "hits_total", "Total cache hits.")
	CacheMisses = counter("cache", "misses_total", "Total cache misses.")
)

// DefaultRegistry is the registry /metrics serves.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		OrdersPlaced,
		OrdersCancelled,
		ReviewsWritten,
		QueueJobsProcessed,
		QueueJobDuration,
		CacheHits,
		CacheMisses,
	)
}

// MustRegister adds extra collectors to the app registry.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware tracks duration, count and in-flight gauge per request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			status := strconv.Itoa(sw.status)
			elapsed := time.Since(start).Seconds()
			RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(elapsed)
			RequestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		})
	}
}

// Handler serves the metrics page. Mount on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// RecordQueueJob tallies one finished queue job.
func RecordQueueJob(jobType, status string, start time.Time) {
	QueueJobsProcessed.WithLabelValues(status).Inc()
	QueueJobDuration.WithLabelValues(jobType).Observe(time.Since(start).Seconds())
}
