package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carrental",
			Name:      "reservation_transitions_total",
			Help:      "Count of applied reservation lifecycle actions.",
		},
		[]string{"action"},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carrental",
			Name:      "booking_conflicts_total",
			Help:      "Count of booking or extension attempts rejected for overlapping dates.",
		},
	)

	outboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carrental",
			Name:      "outbox_messages_total",
			Help:      "Count of outbox messages by publish result.",
		},
		[]string{"result"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carrental",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(transitions, bookingConflicts, outboxPublished, httpDuration)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func IncTransition(action string) {
	transitions.WithLabelValues(action).Inc()
}

func IncBookingConflict() {
	bookingConflicts.Inc()
}

func IncOutbox(result string) {
	outboxPublished.WithLabelValues(result).Inc()
}

func ObserveHTTP(method, route, status string, seconds float64) {
	httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}
