// Package metrics expone las métricas Prometheus de la API.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/sales"
)

// Resultados de una consulta de CEP.
const (
	PostalHit   = "hit"
	PostalMiss  = "miss"
	PostalError = "error"
)

// DefaultPrefix prefijo de las métricas cuando METRICS_PREFIX no está definido.
const DefaultPrefix = "ecommerce"

// Metrics agrupa los colectores de la API sobre un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	saleOperations      *prometheus.CounterVec
	postalLookups       *prometheus.CounterVec
}

var _ sales.Observer = (*Metrics)(nil)

// New registra los colectores con el prefijo dado.
func New(prefix string) *Metrics {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		saleOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_sale_operations_total",
				Help: "Total number of sale ledger operations",
			},
			[]string{"operation", "result"},
		),
		postalLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_postal_lookups_total",
				Help: "Total number of postal code lookups by cache result",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.saleOperations,
		m.postalLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry devuelve el registro (útil en tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveSaleOp cuenta una operación del ledger de ventas.
func (m *Metrics) ObserveSaleOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.saleOperations.WithLabelValues(op, result).Inc()
}

// ObservePostal cuenta una consulta de CEP (hit | miss | error).
func (m *Metrics) ObservePostal(result string) {
	m.postalLookups.WithLabelValues(result).Inc()
}

// Middleware registra contador y duración de cada petición HTTP.
// El path es el de la ruta registrada (/api/products/:id) para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		method := c.Method()
		path := c.Route().Path
		code := strconv.Itoa(status)

		m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
		m.httpRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registro en formato Prometheus (GET /metrics).
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
