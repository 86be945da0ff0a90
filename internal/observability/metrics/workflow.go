package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

// WorkflowMetrics tracks campaign workflow runs. One instance per process;
// the service label distinguishes the API's inline runs from the worker's.
type WorkflowMetrics struct {
	registry *prometheus.Registry
	service  string

	runsTotal        *prometheus.CounterVec
	runDuration      *prometheus.HistogramVec
	runsInFlight     prometheus.Gauge
	stageDuration    *prometheus.HistogramVec
	generatedItems   *prometheus.HistogramVec
	guidanceFallback *prometheus.CounterVec
	queueLag         *prometheus.HistogramVec
}

func NewWorkflowMetrics(service string) *WorkflowMetrics {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ce",
			Subsystem: "workflow",
			Name:      "runs_total",
			Help:      "Total completed campaign runs by final status.",
		},
		[]string{"service", "status"},
	)
	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ce",
			Subsystem: "workflow",
			Name:      "run_duration_seconds",
			Help:      "Campaign run duration in seconds by final status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	runsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ce",
			Subsystem: "workflow",
			Name:      "runs_in_flight",
			Help:      "Number of campaign runs currently executing.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ce",
			Subsystem: "workflow",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each workflow stage in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "stage"},
	)
	generatedItems := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ce",
			Subsystem: "workflow",
			Name:      "generated_items",
			Help:      "Distribution of content items produced per successful run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
		[]string{"service"},
	)
	guidanceFallback := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ce",
			Subsystem: "workflow",
			Name:      "guidance_fallback_total",
			Help:      "Total runs that proceeded without campaign guidance.",
		},
		[]string{"service"},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ce",
			Subsystem: "workflow",
			Name:      "queue_lag_seconds",
			Help:      "Delay between campaign enqueue and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		runsTotal,
		runDuration,
		runsInFlight,
		stageDuration,
		generatedItems,
		guidanceFallback,
		queueLag,
	)

	return &WorkflowMetrics{
		registry:         registry,
		service:          service,
		runsTotal:        runsTotal,
		runDuration:      runDuration,
		runsInFlight:     runsInFlight,
		stageDuration:    stageDuration,
		generatedItems:   generatedItems,
		guidanceFallback: guidanceFallback,
		queueLag:         queueLag,
	}
}

func (m *WorkflowMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkflowMetrics) StartRun() {
	m.runsInFlight.Inc()
}

func (m *WorkflowMetrics) FinishRun(status string, duration time.Duration) {
	m.runsInFlight.Dec()
	if status == "" {
		status = "unknown"
	}
	m.runsTotal.WithLabelValues(m.service, status).Inc()
	m.runDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
}

func (m *WorkflowMetrics) ObserveStage(stage domain.WorkflowState, duration time.Duration) {
	m.stageDuration.WithLabelValues(m.service, string(stage)).Observe(duration.Seconds())
}

func (m *WorkflowMetrics) ObserveGeneratedItems(count int) {
	m.generatedItems.WithLabelValues(m.service).Observe(float64(count))
}

func (m *WorkflowMetrics) RecordGuidanceFallback() {
	m.guidanceFallback.WithLabelValues(m.service).Inc()
}

func (m *WorkflowMetrics) ObserveQueueLag(lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(m.service).Observe(lag.Seconds())
}
