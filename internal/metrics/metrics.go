package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	BaseTaxCreated      prometheus.Counter
	RegistrationOps     *prometheus.CounterVec
	LoginFailures       prometheus.Counter
	LoginLockouts       prometheus.Counter
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BaseTaxCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "thaitravel_base_province_tax_created_total",
			Help: "Total number of base province tax rates created",
		}),
		RegistrationOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "thaitravel_registrations_total",
			Help: "Province tax registrations by operation",
		}, []string{"operation"}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "thaitravel_login_failures_total",
			Help: "Total number of rejected password logins",
		}),
		LoginLockouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "thaitravel_login_lockouts_total",
			Help: "Login attempts refused because the account is locked out",
		}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "thaitravel_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncBaseTaxCreated() {
	if m == nil {
		return
	}
	m.BaseTaxCreated.Inc()
}

// IncRegistration records a registration write; operation is create, update
// or delete.
func (m *Metrics) IncRegistration(operation string) {
	if m == nil {
		return
	}
	m.RegistrationOps.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncLoginFailure() {
	if m == nil {
		return
	}
	m.LoginFailures.Inc()
}

func (m *Metrics) IncLoginLockout() {
	if m == nil {
		return
	}
	m.LoginLockouts.Inc()
}

// ObserveHTTPRequest records the duration of a request that started at start.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
