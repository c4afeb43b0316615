package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "identifo_api_request_duration_ms",
		Help:    "Latency of identity API calls in milliseconds",
		Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"endpoint", "method"})

	requestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "identifo_api_request_errors_total",
		Help: "Identity API calls that surfaced an error, by error id",
	}, []string{"endpoint", "id"})
)
