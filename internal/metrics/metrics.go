// Package metrics holds the Prometheus instruments shared by the
// controllers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestTotal counts ingestions by kind (movie, tv, episode, person)
	// and outcome (created, cached, error)
	IngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gomediadex_ingest_total",
		Help: "Number of ingestions by kind and outcome",
	}, []string{"kind", "outcome"})

	// IngestDuration observes end-to-end ingestion latency by kind
	IngestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gomediadex_ingest_duration_seconds",
		Help:    "Ingestion latency by kind",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// ScanFilesTotal counts files seen by library scans, by outcome
	// (added, known, ignored, error)
	ScanFilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gomediadex_scan_files_total",
		Help: "Number of files seen by library scans, by outcome",
	}, []string{"outcome"})

	// ArtworkFetchTotal counts artwork downloads by outcome
	ArtworkFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gomediadex_artwork_fetch_total",
		Help: "Number of artwork downloads by outcome",
	}, []string{"outcome"})
)
