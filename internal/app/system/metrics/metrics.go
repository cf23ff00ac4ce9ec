// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the registration and login counters.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeLimited  = "limited"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	reg prometheus.Gatherer

	Registrations   *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	ProfilesAdded   prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them, together with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "orphanagecare_registrations_total",
			Help: "Registration attempts by identity kind and outcome",
		}, []string{"kind", "outcome"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "orphanagecare_logins_total",
			Help: "Login attempts by identity kind and outcome",
		}, []string{"kind", "outcome"}),
		ProfilesAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "orphanagecare_profiles_added_total",
			Help: "Orphanage profiles stored",
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orphanagecare_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Registration counts one registration attempt. Nil-safe.
func (m *Metrics) Registration(kind, outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(kind, outcome).Inc()
}

// Login counts one login attempt. Nil-safe.
func (m *Metrics) Login(kind, outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(kind, outcome).Inc()
}

// ProfileAdded counts one stored profile. Nil-safe.
func (m *Metrics) ProfileAdded() {
	if m == nil {
		return
	}
	m.ProfilesAdded.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Middleware observes request latency labelled by the chi route pattern,
// so path parameters do not explode the label set. Unmatched requests are
// recorded under "unmatched".
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
