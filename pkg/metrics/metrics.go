package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	UpstreamRequests      *prometheus.CounterVec
	UpstreamDuration      *prometheus.HistogramVec
	ActiveViews           prometheus.Gauge
	ToggleOperationsTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, registerer prometheus.Registerer) *Metrics {
	prefix := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_controller_requests_total",
				Help: "Total number of requests to the controller API",
			},
			[]string{"operation", "outcome"}, // outcome: success/error
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_controller_request_duration_seconds",
				Help:    "Controller API request duration",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		ActiveViews: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_active_views",
			Help: "Number of mounted organization notification views",
		}),
		ToggleOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_toggle_operations_total",
				Help: "Total number of association toggles",
			},
			[]string{"bucket", "action", "outcome"},
		),
	}

	registerer.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.ActiveViews,
		m.ToggleOperationsTotal,
	)

	return m
}

// ObserveUpstream фиксирует результат запроса к API контроллера
func (m *Metrics) ObserveUpstream(operation string, seconds float64, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	m.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(operation).Observe(seconds)
}

// SetActiveViews обновляет количество активных представлений
func (m *Metrics) SetActiveViews(n int) {
	if m == nil {
		return
	}
	m.ActiveViews.Set(float64(n))
}

// ObserveToggle фиксирует переключение привязки шаблона
func (m *Metrics) ObserveToggle(bucket, action string, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ToggleOperationsTotal.WithLabelValues(bucket, action, outcome).Inc()
}

func sanitize(name string) string {
	if name == "" {
		return "orgnotifications"
	}
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)
}
