package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render outcomes
const (
	outcomeOK           = "ok"
	outcomeEmpty        = "empty"
	outcomeLoadError    = "load_error"
	outcomeBadSelection = "bad_selection"
)

var (
	// renderTotal counts render passes by outcome
	renderTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salarydash_render_total",
		Help: "Total dashboard render passes by outcome",
	}, []string{"outcome"})

	// renderDuration tracks how long a render pass takes, dataset load included
	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "salarydash_render_duration_seconds",
		Help:    "Dashboard render duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
	})

	datasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "salarydash_dataset_rows",
		Help: "Rows in the most recently loaded dataset",
	})
)
