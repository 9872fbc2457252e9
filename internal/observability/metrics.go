// Package observability holds the Prometheus instruments of the site.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fxsignals"

// Metrics satisfies signals.FallbackRecorder, news.FallbackRecorder and
// contact.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	signalFallbacks  *prometheus.CounterVec
	newsFallbacks    *prometheus.CounterVec
	contactSubmitted *prometheus.CounterVec
}

// New registers every instrument on reg. Passing a fresh registry keeps
// tests isolated.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		// Labels: route (gin route pattern), status (HTTP code)
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code",
		}, []string{"route", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),

		// Labels: feed (data, daily, monthly), reason (unconfigured, unavailable, error)
		signalFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signal_fallbacks_total",
			Help:      "Signal listings served from mock data",
		}, []string{"feed", "reason"}),

		newsFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_fallbacks_total",
			Help:      "News responses served from mock data",
		}, []string{"reason"}),

		// Labels: result (invalid, simulated, sent, failed, forbidden)
		contactSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"result"}),
	}
}

// NewDefault builds Metrics on a new registry that also carries the Go
// runtime and process collectors.
func NewDefault() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) SignalFallback(feed, reason string) {
	m.signalFallbacks.WithLabelValues(feed, reason).Inc()
}

func (m *Metrics) NewsFallback(reason string) {
	m.newsFallbacks.WithLabelValues(reason).Inc()
}

func (m *Metrics) ContactSubmission(result string) {
	m.contactSubmitted.WithLabelValues(result).Inc()
}
