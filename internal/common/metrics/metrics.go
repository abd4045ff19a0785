// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schema_documents_emitted_total",
			Help: "Total number of JSON-LD documents emitted per document type",
		},
		[]string{"document_type"},
	)

	DocumentsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schema_documents_suppressed_total",
			Help: "Total number of documents suppressed (gate miss, empty input, degenerate)",
		},
		[]string{"document_type", "reason"},
	)

	BuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "schema_build_duration_seconds",
			Help: "Duration of document building in seconds",
		},
		[]string{"document_type"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schema_cache_lookups_total",
			Help: "Cache lookups per cache name and outcome (hit/miss)",
		},
		[]string{"cache", "outcome"},
	)
)
