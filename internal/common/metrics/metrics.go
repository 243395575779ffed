// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_resolutions_total",
			Help: "Total number of resolved questions by resolution path",
		},
		[]string{"path"},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_resolution_duration_seconds",
			Help: "Duration of question resolution in seconds",
		},
		[]string{"path"},
	)

	EnrichmentTriggers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_enrichment_triggers_total",
			Help: "Total number of enrichment lookups triggered",
		},
	)

	EnrichmentCallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_enrichment_callbacks_total",
			Help: "Total number of enrichment callbacks received by status",
		},
		[]string{"status"},
	)

	CallbackDeliveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_callback_delivery_failures_total",
			Help: "Total number of worker callback deliveries that failed",
		},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)
)
