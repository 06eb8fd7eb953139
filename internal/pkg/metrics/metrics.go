package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pricetracker"

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry prometheus.Gatherer

	// HTTP
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Domain
	ComparisonsBuilt         prometheus.Counter
	DuplicatePeriodDocuments *prometheus.CounterVec
	LedgerFailures           *prometheus.CounterVec
	ExportsRendered          *prometheus.CounterVec
}

// New registers all collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		ComparisonsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_built_total",
			Help:      "Total number of comparison sets built for price sheets",
		}),
		DuplicatePeriodDocuments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "duplicate_period_documents_total",
				Help:      "Lookups that found more than one sheet for the same commodity and period",
			},
			[]string{"province"},
		),
		LedgerFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_failures_total",
				Help:      "Audit ledger commits that failed after the primary write succeeded",
			},
			[]string{"reason"},
		),
		ExportsRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_rendered_total",
				Help:      "Report artifacts rendered",
			},
			[]string{"format"},
		),
	}
}

// NewNop returns metrics bound to a private registry. Used by tests and CLI tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// Middleware tracks request count and latency per route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			path := c.Path()
			method := c.Request().Method
			m.RequestCounter.With(prometheus.Labels{
				"method": method,
				"path":   path,
				"status": strconv.Itoa(c.Response().Status),
			}).Inc()
			m.RequestDuration.With(prometheus.Labels{
				"method": method,
				"path":   path,
			}).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
