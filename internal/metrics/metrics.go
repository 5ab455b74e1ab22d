package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reserva",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reserva",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	suggestionRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reserva",
			Name:      "suggestion_requests_total",
			Help:      "Count of slot suggestion queries by outcome.",
		},
		[]string{"outcome"},
	)

	reminderSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reserva",
			Name:      "reminder_sent_total",
			Help:      "Count of reminder emails sent.",
		},
	)

	noShowMarked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reserva",
			Name:      "no_show_marked_total",
			Help:      "Count of bookings swept to no_show.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated,
			bookingCancelled,
			suggestionRequests,
			reminderSent,
			noShowMarked,
		)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

// IncSuggestion records a suggestion query outcome: "found" or "none".
func IncSuggestion(outcome string) {
	suggestionRequests.WithLabelValues(outcome).Inc()
}

func IncReminderSent() {
	reminderSent.Inc()
}

func AddNoShowMarked(n float64) {
	noShowMarked.Add(n)
}
