package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestsThrottled отклоненные лимитером запросы, по маршруту и типу автора
var RequestsThrottled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_throttled_total",
		Help: "HTTP requests rejected by the rate limiter by route and actor type",
	},
	[]string{"route", "actor_type"},
)
