package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(cv *prometheus.CounterVec, group string) float64 {
	c, err := cv.GetMetricWithLabelValues(group)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// isolateEntries routes entries collectors to a fresh registry for the test.
func isolateEntries(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	orig := entriesReg
	entriesReg = reg
	t.Cleanup(func() { entriesReg = orig })
	return reg
}

// entriesGauge returns music_cache_entries for group, or -1 when absent.
func entriesGauge(reg *prometheus.Registry, group string) float64 {
	families, _ := reg.Gather()
	for _, family := range families {
		if family.GetName() != "music_cache_entries" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "cache" && label.GetValue() == group {
					return metric.GetGauge().GetValue()
				}
			}
		}
	}
	return -1
}

func newSearchCache(t *testing.T, group string, size int, onEvict func(string, []byte)) Cache {
	t.Helper()
	c, err := New("memory", ProviderConfig{Size: size, TTL: time.Hour, Group: group, OnEvict: onEvict})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestInstrumentedCache_Counters(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`callback({"data":{"song":{"list":[]}}})`)

	tests := []struct {
		name    string
		group   string
		run     func(c Cache)
		counter *prometheus.CounterVec
		diff    float64
	}{
		{
			name:    "hit on cached payload",
			group:   "counters-hit",
			run:     func(c Cache) { c.Set(ctx, "tx:晴天", payload); _, _ = c.Get(ctx, "tx:晴天") },
			counter: HitsTotal,
			diff:    1,
		},
		{
			name:    "miss on other platform",
			group:   "counters-miss",
			run:     func(c Cache) { c.Set(ctx, "tx:晴天", payload); _, _ = c.Get(ctx, "wy:晴天") },
			counter: MissesTotal,
			diff:    1,
		},
		{
			name:    "stored bytes",
			group:   "counters-bytes",
			run:     func(c Cache) { c.Set(ctx, "tx:a", payload); c.Set(ctx, "tx:b", []byte("{}")) },
			counter: StoredBytesTotal,
			diff:    float64(len(payload) + 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newSearchCache(t, tt.group, 10, nil)
			before := counterValue(tt.counter, tt.group)
			tt.run(c)
			if got := counterValue(tt.counter, tt.group) - before; got != tt.diff {
				t.Errorf("Expected counter diff %.0f, got %.0f", tt.diff, got)
			}
		})
	}
}

func TestInstrumentedCache_EvictionKeepsCallback(t *testing.T) {
	var evicted []string
	c := newSearchCache(t, "evict", 2, func(key string, _ []byte) {
		evicted = append(evicted, key)
	})

	before := counterValue(EvictionsTotal, "evict")
	c.Set(context.Background(), "tx:a", []byte("1"))
	c.Set(context.Background(), "tx:b", []byte("2"))
	c.Set(context.Background(), "wy:c", []byte("3"))

	if diff := counterValue(EvictionsTotal, "evict") - before; diff != 1 {
		t.Errorf("Expected one eviction, got %.0f", diff)
	}
	if len(evicted) != 1 || evicted[0] != "tx:a" {
		t.Errorf("Expected the caller's OnEvict to see tx:a, got %v", evicted)
	}
}

func TestInstrumentedCache_EntriesAtScrapeTime(t *testing.T) {
	reg := isolateEntries(t)
	c := newSearchCache(t, "entries", 10, nil)

	if v := entriesGauge(reg, "entries"); v != 0 {
		t.Fatalf("Expected 0 entries, got %.0f", v)
	}
	c.Set(context.Background(), "tx:x", []byte("1"))
	c.Set(context.Background(), "wy:x", []byte("2"))
	if v := entriesGauge(reg, "entries"); v != 2 {
		t.Errorf("Expected 2 entries, got %.0f", v)
	}
	c.Delete(context.Background(), "tx:x")
	if v := entriesGauge(reg, "entries"); v != 1 {
		t.Errorf("Expected 1 entry after Delete, got %.0f", v)
	}
}

func TestInstrumentedCache_CloseUnregistersEntries(t *testing.T) {
	reg := isolateEntries(t)
	c, err := New("memory", ProviderConfig{Size: 10, TTL: time.Hour, Group: "closing"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v := entriesGauge(reg, "closing"); v != 0 {
		t.Fatalf("Expected the collector to report 0 after New, got %.0f", v)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if v := entriesGauge(reg, "closing"); v != -1 {
		t.Errorf("Expected no entries metric after Close, got %.0f", v)
	}
}
