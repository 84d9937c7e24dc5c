// Package metrics provides Prometheus metrics for the Bramble service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal tracks matching runs by tenant and mandate
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bramble",
			Subsystem: "engine",
			Name:      "searches_total",
			Help:      "Total number of matching runs",
		},
		[]string{"tenant_id", "mandate_id"},
	)

	// SearchDuration tracks matching run duration in seconds
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bramble",
			Subsystem: "engine",
			Name:      "search_duration_seconds",
			Help:      "Duration of matching runs in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"tenant_id"},
	)

	// RecommendationsTotal tracks recommendations produced by action bucket
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bramble",
			Subsystem: "engine",
			Name:      "recommendations_total",
			Help:      "Total recommendations produced by action",
		},
		[]string{"tenant_id", "action"},
	)

	// ListingsRejectedTotal tracks hard filter rejections by reason code
	ListingsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bramble",
			Subsystem: "filter",
			Name:      "listings_rejected_total",
			Help:      "Total listings rejected by the hard filter, by reason code",
		},
		[]string{"tenant_id", "code"},
	)

	// PlanningAnalysesTotal tracks planning analyses by resulting label
	PlanningAnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bramble",
			Subsystem: "planning",
			Name:      "analyses_total",
			Help:      "Total planning potential analyses by label",
		},
		[]string{"tenant_id", "label"},
	)
)
