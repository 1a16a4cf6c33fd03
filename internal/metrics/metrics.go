package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the backend collectors.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	devices         *prometheus.GaugeVec
	authEvents      *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smarthome_http_requests_total",
				Help: "HTTP requests served, by method, route pattern and status.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smarthome_http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		devices: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "smarthome_devices",
				Help: "Stored devices by power state.",
			},
			[]string{"state"},
		),
		authEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smarthome_auth_events_total",
				Help: "Authentication events by outcome.",
			},
			[]string{"event"},
		),
	}
	reg.MustRegister(m.requests)
	reg.MustRegister(m.requestDuration)
	reg.MustRegister(m.devices)
	reg.MustRegister(m.authEvents)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetDeviceCounts publishes the current on/off totals.
func (m *Metrics) SetDeviceCounts(on, off int) {
	if m == nil {
		return
	}
	m.devices.WithLabelValues("on").Set(float64(on))
	m.devices.WithLabelValues("off").Set(float64(off))
}

// AuthEvent counts one auth outcome such as "login", "login_failed" or "register".
func (m *Metrics) AuthEvent(event string) {
	if m == nil {
		return
	}
	m.authEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
