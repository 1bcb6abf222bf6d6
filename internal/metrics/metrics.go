// Package metrics exposes Prometheus collectors for the API and the
// generation pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "futurenews"

const (
	KindBatch  = "batch"
	KindDetail = "detail"

	OutcomeSuccess       = "success"
	OutcomeParseError    = "parse_error"
	OutcomeUpstreamError = "upstream_error"

	EntitlementGranted  = "granted"
	EntitlementRejected = "rejected"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	generations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Completion-service generations by kind and outcome.",
	}, []string{"kind", "outcome"})

	generationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Time spent waiting on the completion service.",
		Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"kind"})

	entitlements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entitlement_checks_total",
		Help:      "Entitlement decisions by path and result.",
	}, []string{"path", "result"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, generations, generationDuration, entitlements)
}

func ObserveGeneration(kind, outcome string, d time.Duration) {
	generations.WithLabelValues(kind, outcome).Inc()
	generationDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveEntitlement records a decision for path ("token" or "free_trial").
func ObserveEntitlement(path string, granted bool) {
	result := EntitlementRejected
	if granted {
		result = EntitlementGranted
	}
	entitlements.WithLabelValues(path, result).Inc()
}

// Middleware counts requests and their latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
