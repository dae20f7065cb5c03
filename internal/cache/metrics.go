package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search cache metrics, labelled with the ProviderConfig Group.
var (
	// HitsTotal counts successful cache lookups per group.
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_cache_hits_total",
			Help: "Total number of search cache hits.",
		},
		[]string{"cache"},
	)

	// MissesTotal counts failed cache lookups per group.
	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_cache_misses_total",
			Help: "Total number of search cache misses.",
		},
		[]string{"cache"},
	)

	// StoredBytesTotal counts payload bytes written per group.
	StoredBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_cache_stored_bytes_total",
			Help: "Total number of payload bytes written to the search cache.",
		},
		[]string{"cache"},
	)

	// EvictionsTotal counts evicted entries per group.
	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_cache_evictions_total",
			Help: "Total number of entries evicted from the search cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		StoredBytesTotal,
		EvictionsTotal,
	)
}

// cacheEntriesCollector reports the entry count of one group at scrape time.
type cacheEntriesCollector struct {
	desc    *prometheus.Desc
	lenFunc func() int
}

func (c *cacheEntriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *cacheEntriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.lenFunc()))
}

var (
	entriesCollectorMu sync.Mutex
	entriesCollectors  = make(map[string]*cacheEntriesCollector)
	// entriesReg is swapped for an isolated registry in tests.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector registers the entries collector for group,
// replacing any collector previously registered for it.
func registerEntriesCollector(group string, lenFunc func() int) *cacheEntriesCollector {
	desc := prometheus.NewDesc(
		"music_cache_entries",
		"Current number of entries in the search cache.",
		nil,
		prometheus.Labels{"cache": group},
	)
	c := &cacheEntriesCollector{desc: desc, lenFunc: lenFunc}

	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if old, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesCollectors[group] = c
	_ = entriesReg.Register(c)
	return c
}

// unregisterEntriesCollector removes the entries collector for the given group.
func unregisterEntriesCollector(group string) {
	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if c, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(c)
		delete(entriesCollectors, group)
	}
}
