package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics instruments inbound HTTP traffic.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Metrics exposes application-level instruments.
type Metrics struct {
	quotesCreated  prometheus.Counter
	leadsConverted prometheus.Counter
	aiRequests     *prometheus.CounterVec
	aiCacheHits    *prometheus.CounterVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lancer_http_requests_total",
			Help: "Count of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lancer_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func New() *Metrics {
	return &Metrics{
		quotesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lancer_quotes_created_total",
			Help: "Count of quotes created.",
		}),
		leadsConverted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lancer_leads_converted_total",
			Help: "Count of leads converted to clients.",
		}),
		aiRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lancer_ai_requests_total",
			Help: "Count of AI generation requests by capability and outcome.",
		}, []string{"capability", "outcome"}),
		aiCacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lancer_ai_cache_hits_total",
			Help: "Count of AI responses served from the TTL cache.",
		}, []string{"capability"}),
	}
}

func (m *Metrics) RecordQuoteCreated() {
	if m == nil {
		return
	}
	m.quotesCreated.Inc()
}

func (m *Metrics) RecordLeadConverted() {
	if m == nil {
		return
	}
	m.leadsConverted.Inc()
}

func (m *Metrics) RecordAIRequest(capability, outcome string) {
	if m == nil {
		return
	}
	m.aiRequests.WithLabelValues(strings.TrimSpace(capability), strings.TrimSpace(outcome)).Inc()
}

func (m *Metrics) RecordAICacheHit(capability string) {
	if m == nil {
		return
	}
	m.aiCacheHits.WithLabelValues(strings.TrimSpace(capability)).Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.requests.WithLabelValues(route, method, status).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
