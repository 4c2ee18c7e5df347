package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Haiku-API Metrics
var (
	// Generation call counters
	GenerationCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "haiku",
			Subsystem: "api",
			Name:      "generation_calls_total",
			Help:      "Total provider generation calls",
		},
		[]string{"kind", "status"},
	)

	// Generation call duration histogram
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "haiku",
			Subsystem: "api",
			Name:      "generation_duration_seconds",
			Help:      "Provider call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"kind"},
	)

	// Background task counters
	BackgroundTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "haiku",
			Subsystem: "api",
			Name:      "background_tasks_total",
			Help:      "Total background tasks processed",
		},
		[]string{"kind", "status"},
	)

	// Queue depth gauge
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "haiku",
			Subsystem: "api",
			Name:      "task_queue_depth",
			Help:      "Number of queued background tasks",
		},
	)

	// Dashboard connection gauge
	DashboardConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "haiku",
			Subsystem: "api",
			Name:      "dashboard_connections",
			Help:      "Currently connected dashboard observers",
		},
	)

	// Dashboard push counter
	DashboardPushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "haiku",
			Subsystem: "api",
			Name:      "dashboard_pushes_total",
			Help:      "Total project views pushed to observers",
		},
		[]string{"status"},
	)
)
