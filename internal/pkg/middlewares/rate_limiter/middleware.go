package rate_limiter

import (
	"net/http"
	"strconv"

	"fulfillment/pkg/logger"

	"github.com/gorilla/mux"
)

const (
	rejectBody  = `{"error":"rate limit exceeded, try again later"}`
	actorHeader = "X-Actor-Type"
)

// Middleware отвечает 429, когда limiter не выдал токен. qps попадает в X-RateLimit-Limit.
func Middleware(log handlerLogger, qps int, limiter Limiter) func(http.Handler) http.Handler {
	limit := strconv.Itoa(qps)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := routeTemplate(r)
			actorType := r.Header.Get(actorHeader)
			if actorType == "" {
				actorType = "anonymous"
			}

			RequestsThrottled.WithLabelValues(route, actorType).Inc()
			log.Warn("request throttled",
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("actor_type", actorType),
				logger.NewField("remote_addr", r.RemoteAddr),
			)

			h := w.Header()
			h.Set("Content-Type", "application/json")
			h.Set("X-RateLimit-Limit", limit)
			h.Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(rejectBody)); err != nil {
				log.Error("failed to write throttled response",
					logger.NewField("error", err),
					logger.NewField("route", route),
				)
			}
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}

	return r.URL.Path
}
