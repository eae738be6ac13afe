package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_pulse_posts_ingested_total",
		Help: "The total number of ingested posts",
	}, []string{"source"})

	AnnotationProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_pulse_annotation_processed_total",
		Help: "The total number of records processed by the annotation pipeline",
	}, []string{"status"})

	AnnotationBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relief_pulse_annotation_backlog_size",
		Help: "Number of unannotated posts in the database",
	})

	AnnotationBatchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "relief_pulse_annotation_batch_duration_seconds",
		Help:    "Duration in seconds to annotate one batch",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60},
	})

	AnalyzerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "relief_pulse_analyzer_request_duration_seconds",
		Help:    "Duration of analyzer calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})

	AnalyzerFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relief_pulse_analyzer_fallbacks_total",
		Help: "The total number of times the backup analyzer was used",
	})

	ReportsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_pulse_reports_built_total",
		Help: "The total number of analysis reports built",
	}, []string{"trigger"})

	ReportBuildDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "relief_pulse_report_build_duration_seconds",
		Help:    "Duration in seconds to build an analysis report",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	})
)
