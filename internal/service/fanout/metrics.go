package fanout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_publish_total",
			Help: "Total number of announcement publications by channel kind and result",
		},
		[]string{"scope", "result"},
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fanout_publish_duration_seconds",
			Help:    "Duration of announcement publication including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scope"},
	)

	PublishRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_publish_retries_total",
			Help: "Total number of repeated publication attempts",
		},
		[]string{"scope"},
	)

	EnqueueDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fanout_enqueue_dropped_total",
			Help: "Events not accepted by the in-process queue and left for redrive",
		},
	)

	EventsDispatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fanout_events_dispatched_total",
			Help: "Events delivered to every target",
		},
	)

	ClaimsBusyTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fanout_claims_busy_total",
			Help: "Targets skipped because another dispatcher holds a live claim",
		},
	)
)
