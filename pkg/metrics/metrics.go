package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "familykarting"

var (
	registry *prometheus.Registry
	once     sync.Once
)

var (
	ResultsCalculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_calculations_total",
		Help:      "Race result calculations by outcome",
	}, []string{"outcome"})

	ResultsRowsWrittenTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_rows_written_total",
		Help:      "Race result rows upserted",
	})

	ScoreboardBuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scoreboard_builds_total",
		Help:      "Scoreboards computed from the stored results",
	})

	WeatherRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "weather_requests_total",
		Help:      "Weather lookups by outcome",
	}, []string{"outcome"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Registry returns the registry with every collector of the app registered once.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			ResultsCalculationsTotal,
			ResultsRowsWrittenTotal,
			ScoreboardBuildsTotal,
			WeatherRequestsTotal,
			HTTPRequestsTotal,
			HTTPRequestDuration,
		)
	})
	return registry
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
