package metrics

import (
	"net/http"
	"strconv"
	"time"

	"fulfillment/pkg/logger"

	"github.com/gorilla/mux"
)

const actorHeader = "X-Actor-Type"

func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			statusCode := strconv.Itoa(rw.statusCode)
			route := routeOf(r)

			HTTPRequestDuration.WithLabelValues(r.Method, route, statusCode).Observe(duration.Seconds())
			HTTPRequestTotal.WithLabelValues(r.Method, route, statusCode).Inc()

			actorType := r.Header.Get(actorHeader)
			if actorType == "" {
				actorType = "anonymous"
			}
			HTTPRequestsByActor.WithLabelValues(actorType).Inc()

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", route),
				logger.NewField("status", statusCode),
				logger.NewField("actor_type", actorType),
				logger.NewField("duration", duration.String()),
			).Info("HTTP request")
		})
	}
}

// routeOf шаблон маршрута mux, чтобы не раздувать кардинальность метрик идентификаторами.
func routeOf(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unmatched"
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
