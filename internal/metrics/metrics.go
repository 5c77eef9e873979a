package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "medevents_gateway"

var (
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Backend requests issued by the gateway, by method and HTTP status code.",
	}, []string{"method", "code"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Latency of backend requests issued by the gateway.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Access token refresh attempts, by outcome.",
	}, []string{"outcome"})

	ConnectionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connection_errors_total",
		Help:      "Backend calls that failed before an HTTP response was received.",
	})
)

const (
	RefreshSucceeded = "success"
	RefreshFailed    = "failure"
	RefreshSkipped   = "no_refresh_token"
)

func ObserveRequest(method string, code int, started time.Time) {
	Requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	RequestDuration.WithLabelValues(method).Observe(time.Since(started).Seconds())
}
