package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry prometheus.Gatherer

	Registrations *prometheus.CounterVec
	Logins        *prometheus.CounterVec
	Emails        *prometheus.CounterVec
	Sessions      *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hirehub_registrations_total",
			Help: "Accounts created, by role and auth provider",
		}, []string{"role", "provider"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hirehub_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hirehub_emails_total",
			Help: "Outbound emails by kind and outcome",
		}, []string{"kind", "outcome"}),
		Sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hirehub_sessions_total",
			Help: "Refresh session lifecycle events",
		}, []string{"event"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hirehub_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.Registrations, m.Logins, m.Emails, m.Sessions, m.HTTPDuration)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registered(role, provider string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(role, provider).Inc()
}

func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Email(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.Emails.WithLabelValues(kind, outcome).Inc()
}

// Session records issued, rotated, revoked and expired refresh sessions.
func (m *Metrics) Session(event string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Sessions.WithLabelValues(event).Add(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(method, route, status).Observe(seconds)
}
