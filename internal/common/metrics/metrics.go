// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Chat questions answered, by outcome",
		},
		[]string{"status"},
	)

	TrendAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_analyses_total",
			Help: "Trend prediction requests, by outcome",
		},
		[]string{"status"},
	)

	DatasetQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_queries_total",
			Help: "Per-dataset store reads during fan-out",
		},
		[]string{"dataset", "status"},
	)

	FanOutCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_cache_total",
			Help: "Fan-out cache lookups by result",
		},
		[]string{"result"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Latency of chat completion requests",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"model", "status"},
	)
)
