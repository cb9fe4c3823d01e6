package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "coinglass_proxy_"

// Service constants
const (
	ServiceGateway   = "gateway"
	ServiceCoinglass = "coinglass"
)

// Gateway request statuses
const (
	StatusOK            = "ok"
	StatusFallback      = "fallback"
	StatusBadRequest    = "bad_request"
	StatusRateLimited   = "rate_limited"
	StatusUpstreamError = "upstream_error"
	StatusError         = "error"
)

var (
	// Gateway request counter by outcome
	// Cardinality: ~6 (ok, fallback, bad_request, rate_limited, upstream_error, error)
	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "gateway_requests_total",
			Help: "Total number of inbound gateway requests by outcome",
		},
		[]string{"status"},
	)

	// Upstream request counter per service
	// Cardinality: ~3 (success, plan_limited, error)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to the Coinglass API",
		},
		[]string{"service", "status"},
	)

	// Upstream request latency
	// Cardinality: ~1 (single upstream service)
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "upstream_request_duration_seconds",
			Help: "Time taken by requests to the Coinglass API",
		},
		[]string{"service"},
	)

	// Response cache hit/miss counter
	// Cardinality: 2 (hit, miss)
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_operations_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"},
	)

	// Number of client entries tracked by the rate limiter
	RateLimitTrackedClientsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "rate_limit_tracked_clients",
			Help: "Number of client entries currently tracked by the rate limiter",
		},
	)
)

// RecordGatewayRequest records an inbound gateway request outcome
func RecordGatewayRequest(status string) {
	GatewayRequestsTotal.WithLabelValues(status).Inc()
}

// RecordCacheOperation records a response cache hit or miss
func RecordCacheOperation(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheOperationsTotal.WithLabelValues(result).Inc()
}

// RecordRateLimitTrackedClients records the rate limiter table size
func RecordRateLimitTrackedClients(count int) {
	RateLimitTrackedClientsGauge.Set(float64(count))
}

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordUpstreamRequest records an upstream API request with its status
func (mw *MetricsWriter) RecordUpstreamRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordUpstreamDuration records the duration of an upstream API request
func (mw *MetricsWriter) RecordUpstreamDuration(duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Printf("Metrics: %s upstream request took %.2fs", mw.serviceName, duration.Seconds())
}

// OnRequest implements the upstream client's status handler interface
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordUpstreamRequest(status)
}
