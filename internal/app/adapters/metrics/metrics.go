package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesCreated counts accepted /send requests.
	MessagesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_messages_created_total",
		Help: "Total number of messages stored",
	})

	// TakeOutcomes counts reads by result: claimed or miss.
	TakeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_takes_total",
			Help: "Total number of message reads by outcome",
		}, []string{"outcome"},
	)

	// MessagesSwept counts records removed by the background sweeper.
	MessagesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_messages_swept_total",
		Help: "Total number of expired messages removed by the sweeper",
	})

	// LiveMessages is the current number of retrievable messages.
	LiveMessages = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_messages_live",
		Help: "Current number of live messages",
	})

	// RequestDuration is registered explicitly in app wiring.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_http_request_seconds",
			Help:    "HTTP request handling time",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"method", "route", "status"},
	)

	// RateLimited counts requests refused by the per-client limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_rate_limited_total",
		Help: "Total number of requests rejected by rate limiting",
	})
)
