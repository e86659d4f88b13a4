package metrics

import (
	"strconv"
	"time"

	"catalog-service/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported by the catalog service.
type Metrics struct {
	ImportRuns      *prometheus.CounterVec
	ImportDrafts    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ImportRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "import_runs_total",
			Help:      "Spreadsheet import runs by mode.",
		}, []string{"mode"}),
		ImportDrafts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "import_drafts_total",
			Help:      "Product drafts processed by imports, by outcome.",
		}, []string{"mode", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func importMode(validateOnly bool) string {
	if validateOnly {
		return "validate"
	}
	return "import"
}

// RecordImport counts one import run and its draft outcomes.
func (m *Metrics) RecordImport(result *catalog.ImportResult, validateOnly bool) {
	if m == nil || result == nil {
		return
	}
	mode := importMode(validateOnly)
	m.ImportRuns.WithLabelValues(mode).Inc()
	m.ImportDrafts.WithLabelValues(mode, "success").Add(float64(result.Success))
	m.ImportDrafts.WithLabelValues(mode, "failed").Add(float64(result.Failed))
}

// Middleware observes request latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	h := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

