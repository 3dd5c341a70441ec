package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	readingsSubmitted *prometheus.CounterVec
	invoicesIssued    prometheus.Counter
	renderFailures    prometheus.Counter
	routesCreated     prometheus.Counter
	routesFinalized   prometheus.Counter
}

// New registers the domain instruments on the default registry.
func New() (*Metrics, error) {
	m := &Metrics{
		readingsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "acueducto_readings_submitted_total",
			Help: "Meter readings accepted, labelled by customer zone.",
		}, []string{"zone"}),
		invoicesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acueducto_invoices_issued_total",
			Help: "Invoices issued with a sequential number.",
		}),
		renderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acueducto_invoice_render_failures_total",
			Help: "PDF render failures during bulk export.",
		}),
		routesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acueducto_routes_created_total",
			Help: "Reading routes created.",
		}),
		routesFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "acueducto_routes_finalized_total",
			Help: "Reading routes finalized.",
		}),
	}

	collectors := []prometheus.Collector{
		m.readingsSubmitted,
		m.invoicesIssued,
		m.renderFailures,
		m.routesCreated,
		m.routesFinalized,
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *Metrics) RecordReadingSubmitted(zone string) {
	if m == nil {
		return
	}
	m.readingsSubmitted.WithLabelValues(strings.TrimSpace(zone)).Inc()
}

func (m *Metrics) RecordInvoiceIssued() {
	if m == nil {
		return
	}
	m.invoicesIssued.Inc()
}

func (m *Metrics) RecordRenderFailure() {
	if m == nil {
		return
	}
	m.renderFailures.Inc()
}

func (m *Metrics) RecordRouteCreated() {
	if m == nil {
		return
	}
	m.routesCreated.Inc()
}

func (m *Metrics) RecordRouteFinalized() {
	if m == nil {
		return
	}
	m.routesFinalized.Inc()
}

// HTTPMetrics instruments the gin request path.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() (*HTTPMetrics, error) {
	h := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "acueducto_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "acueducto_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	for _, c := range []prometheus.Collector{h.requests, h.duration} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return h, nil
}

// GinMiddleware records request counts and latency.
func GinMiddleware(h *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h == nil {
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
		h.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		h.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
