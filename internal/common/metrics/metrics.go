// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_searches_total",
			Help: "Total number of client searches handled",
		},
		[]string{"trigger"},
	)

	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_selections_total",
			Help: "Total number of decoded button selections",
		},
		[]string{"kind"},
	)

	EnrichmentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_enrichment_outcomes_total",
			Help: "Enrichment call outcomes by capability",
		},
		[]string{"capability", "outcome"},
	)

	DocumentFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_document_fetches_total",
			Help: "Document fetch outcomes",
		},
		[]string{"outcome"},
	)

	InteractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lookup_interaction_duration_seconds",
			Help: "Duration of interaction handling in seconds",
		},
		[]string{"handler"},
	)

	DirectorySize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lookup_directory_records",
			Help: "Number of records in the current directory snapshot",
		},
		[]string{"subset"},
	)
)
