package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors on a private registry so
// repeated construction (e.g. in tests) never panics on double registration.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	BookingsTotal        prometheus.Counter
	SlotConflictsTotal   prometheus.Counter
	PaymentFailuresTotal prometheus.Counter
}

func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, path and status code.",
			ConstLabels: labels,
		}, []string{"method", "path", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and path.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		BookingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Consultations booked successfully.",
			ConstLabels: labels,
		}),
		SlotConflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_conflicts_total",
			Help:        "Booking or reschedule attempts rejected because the slot was taken.",
			ConstLabels: labels,
		}),
		PaymentFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "payment_failures_total",
			Help:        "Charges declined or errored at the payment provider.",
			ConstLabels: labels,
		}),
	}

	registry.MustRegister(m.requestsTotal, m.requestDuration, m.BookingsTotal, m.SlotConflictsTotal, m.PaymentFailuresTotal)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, path string, code int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
