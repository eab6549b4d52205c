package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const shuttingDownBody = `{"error":"service is shutting down"}`

// RequestsRejected запросы, пришедшие после начала остановки
var RequestsRejected = promauto.NewCounter(prometheus.CounterOpts{
	Name: "http_requests_rejected_on_shutdown_total",
	Help: "HTTP requests rejected because the service is draining",
})

// Middleware отклоняет новые запросы, когда ongoingCtx отменен и выставлен флаг остановки.
// Запросы, начатые раньше, дорабатывают.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ongoingCtx.Err() != nil && isShuttingDown.Load() {
				RequestsRejected.Inc()

				h := w.Header()
				h.Set("Content-Type", "application/json")
				h.Set("Connection", "close")
				h.Set("Retry-After", "5")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(shuttingDownBody))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
