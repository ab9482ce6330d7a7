package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripbuilder_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripbuilder_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripbuilder_sync_runs_total",
			Help: "Completed GHL sync runs by type and status",
		},
		[]string{"sync_type", "status"},
	)

	SyncRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripbuilder_sync_records_total",
			Help: "Records written by GHL sync, by entity",
		},
		[]string{"entity"},
	)

	GHLRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripbuilder_ghl_requests_total",
			Help: "Outbound GHL API requests by method and status code",
		},
		[]string{"method", "status"},
	)
)
