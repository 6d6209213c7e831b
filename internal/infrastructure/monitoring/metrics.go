package monitoring

import (
	"bytes"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	RequestsTotal  *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	RequestSize    *prometheus.HistogramVec
	ResponseSize   *prometheus.HistogramVec

	// Error metrics
	ErrorsTotal  *prometheus.CounterVec
	RetriesTotal *prometheus.CounterVec

	// Circuit breaker metrics
	BreakerState    *prometheus.GaugeVec
	BreakerFailures *prometheus.GaugeVec

	// Contribution metrics
	ContributionsCreated *prometheus.CounterVec
	ContributionsUpdated *prometheus.CounterVec
	ContributionsDeleted prometheus.Counter

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
	CacheSize   *prometheus.GaugeVec
}

// NewMetrics creates a new metrics collector backed by its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		// Request metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcp_request_latency_seconds",
				Help:    "API request latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcp_request_size_bytes",
				Help:    "API request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "endpoint"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcp_response_size_bytes",
				Help:    "API response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "endpoint"},
		),

		// Error metrics
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_errors_total",
				Help: "Total number of errors",
			},
			[]string{"error_type", "endpoint"},
		),
		RetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_retries_total",
				Help: "Total number of retries",
			},
			[]string{"endpoint", "attempt"},
		),

		// Circuit breaker metrics
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mcp_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half_open)",
			},
			[]string{"name"},
		),
		BreakerFailures: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mcp_circuit_breaker_failures",
				Help: "Current failure count in circuit breaker",
			},
			[]string{"name"},
		),

		// Contribution metrics
		ContributionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_contributions_created_total",
				Help: "Total contributions created",
			},
			[]string{"type"},
		),
		ContributionsUpdated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_contributions_updated_total",
				Help: "Total contributions updated",
			},
			[]string{"type"},
		),
		ContributionsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mcp_contributions_deleted_total",
				Help: "Total contributions deleted",
			},
		),

		// Cache metrics
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_cache_hits_total",
				Help: "Total cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_cache_misses_total",
				Help: "Total cache misses",
			},
			[]string{"cache_type"},
		),
		CacheSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mcp_cache_size_bytes",
				Help: "Current cache size in bytes",
			},
			[]string{"cache_type"},
		),
	}
}

// RecordRequest records API request metrics. Sizes are observed only
// when nonzero.
func (m *Metrics) RecordRequest(method, endpoint string, status int, latency time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.RequestLatency.WithLabelValues(method, endpoint).Observe(latency.Seconds())
	if reqSize > 0 {
		m.RequestSize.WithLabelValues(method, endpoint).Observe(float64(reqSize))
	}
	if respSize > 0 {
		m.ResponseSize.WithLabelValues(method, endpoint).Observe(float64(respSize))
	}
}

// RecordError records an error occurrence
func (m *Metrics) RecordError(errorType, endpoint string) {
	m.ErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordRetry records a retry attempt
func (m *Metrics) RecordRetry(endpoint string, attempt int) {
	m.RetriesTotal.WithLabelValues(endpoint, strconv.Itoa(attempt)).Inc()
}

// UpdateCircuitBreakerState updates the breaker gauges
// (0=closed, 1=open, 2=half_open)
func (m *Metrics) UpdateCircuitBreakerState(name string, state, failures int) {
	m.BreakerState.WithLabelValues(name).Set(float64(state))
	m.BreakerFailures.WithLabelValues(name).Set(float64(failures))
}

// RecordContributionCreated records a contribution creation
func (m *Metrics) RecordContributionCreated(contribType string) {
	m.ContributionsCreated.WithLabelValues(contribType).Inc()
}

// RecordContributionUpdated records a contribution update
func (m *Metrics) RecordContributionUpdated(contribType string) {
	m.ContributionsUpdated.WithLabelValues(contribType).Inc()
}

// RecordContributionDeleted records a contribution deletion
func (m *Metrics) RecordContributionDeleted() {
	m.ContributionsDeleted.Inc()
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(cacheType string) {
	m.CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(cacheType string) {
	m.CacheMisses.WithLabelValues(cacheType).Inc()
}

// SetCacheSize sets the cache size gauge
func (m *Metrics) SetCacheSize(cacheType string, sizeBytes int64) {
	m.CacheSize.WithLabelValues(cacheType).Set(float64(sizeBytes))
}

// Export serializes all registered metrics in the Prometheus text
// exposition format
func (m *Metrics) Export() ([]byte, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
