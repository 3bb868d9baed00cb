package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Metrics tracks simple operation counters, persisted as JSON alongside
// the cache so restarts keep the running totals.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int
	path     string // empty disables persistence
}

// NewMetrics creates a counter set persisted under dir (empty dir keeps
// counters in memory only). Existing counts are loaded when present.
func NewMetrics(dir string) *Metrics {
	m := &Metrics{counters: make(map[string]int)}
	if dir == "" {
		return m
	}
	m.path = filepath.Join(dir, "metrics.json")

	if data, err := os.ReadFile(m.path); err == nil {
		_ = json.Unmarshal(data, &m.counters)
	}
	return m
}

// Inc increments a counter and persists the snapshot. Persistence
// failures are ignored; metrics never fail a request.
func (m *Metrics) Inc(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[key]++
	if m.path == "" {
		return
	}
	data, err := json.Marshal(m.counters)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return
	}
	_ = os.WriteFile(m.path, data, 0644)
}

// Get returns the current value of a counter.
func (m *Metrics) Get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[key]
}

// Snapshot returns a copy of all counters.
func (m *Metrics) Snapshot() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out
}
