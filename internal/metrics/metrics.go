package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resolve metrics
var (
	ResolvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_resolves_total",
			Help: "Total number of track URL resolutions by platform and result.",
		},
		[]string{"platform", "result"},
	)
)

// Transfer metrics
var (
	TransfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_transfers_total",
			Help: "Total number of media transfers by outcome.",
		},
		[]string{"status"},
	)

	TransferBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "music_transfer_bytes_total",
			Help: "Total number of media bytes written to sinks.",
		},
	)

	ActiveTransfers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "music_active_transfers",
			Help: "Number of media transfers currently streaming.",
		},
	)
)

// Search metrics
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_searches_total",
			Help: "Total number of upstream search queries by platform and result.",
		},
		[]string{"platform", "result"},
	)

	SearchFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "music_search_fallbacks_total",
			Help: "Total number of auto searches that fell back to the secondary platform.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ResolvesTotal,
		TransfersTotal,
		TransferBytesTotal,
		ActiveTransfers,
		SearchesTotal,
		SearchFallbacksTotal,
	)
}
