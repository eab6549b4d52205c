package reservation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_operations_total",
			Help: "Total number of reservation ledger operations by result",
		},
		[]string{"operation", "result"},
	)

	ReservationsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_expired_total",
			Help: "Total number of reservations released by the expiration sweep",
		},
	)
)

func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ReservationOperationsTotal.WithLabelValues(operation, result).Inc()
}
