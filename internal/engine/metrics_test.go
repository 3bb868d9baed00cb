package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMetrics_InMemory(t *testing.T) {
	m := NewMetrics("")

	m.Inc("cache_hits")
	m.Inc("cache_hits")
	m.Inc("local_used")

	if got := m.Get("cache_hits"); got != 2 {
		t.Errorf("cache_hits = %d, want 2", got)
	}
	if got := m.Get("unknown"); got != 0 {
		t.Errorf("unknown counter = %d, want 0", got)
	}
}

func TestMetrics_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	m := NewMetrics(dir)
	m.Inc("provider_calls")
	m.Inc("provider_calls")
	m.Inc("provider_failures")

	if _, err := os.Stat(filepath.Join(dir, "metrics.json")); err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}

	reloaded := NewMetrics(dir)
	if got := reloaded.Get("provider_calls"); got != 2 {
		t.Errorf("reloaded provider_calls = %d, want 2", got)
	}
	if got := reloaded.Get("provider_failures"); got != 1 {
		t.Errorf("reloaded provider_failures = %d, want 1", got)
	}
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := NewMetrics("")
	m.Inc("cache_misses")

	snap := m.Snapshot()
	snap["cache_misses"] = 99

	if got := m.Get("cache_misses"); got != 1 {
		t.Errorf("snapshot mutation leaked into counters: %d", got)
	}
}
