package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Metrics interface {
	IncrementCounter(name string)
	RecordDuration(name string, duration time.Duration)
	RecordGauge(name string, value float64)
}

// Simple in-memory metrics implementation
type InMemoryMetrics struct {
	mu       sync.RWMutex
	counters map[string]*int64
	gauges   map[string]*int64 // store as int64 for atomic access
}

func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]*int64),
		gauges:   make(map[string]*int64),
	}
}

func (m *InMemoryMetrics) IncrementCounter(name string) {
	m.mu.Lock()
	c, exists := m.counters[name]
	if !exists {
		c = new(int64)
		m.counters[name] = c
	}
	m.mu.Unlock()
	atomic.AddInt64(c, 1)
}

func (m *InMemoryMetrics) RecordDuration(name string, duration time.Duration) {
	// Convert to milliseconds
	m.RecordGauge(name+"_duration_ms", float64(duration.Nanoseconds())/1e6)
}

func (m *InMemoryMetrics) RecordGauge(name string, value float64) {
	m.mu.Lock()
	g, exists := m.gauges[name]
	if !exists {
		g = new(int64)
		m.gauges[name] = g
	}
	m.mu.Unlock()
	// Losing the fraction is fine for the gauges we keep (milliseconds).
	atomic.StoreInt64(g, int64(value))
}

func (m *InMemoryMetrics) GetCounters() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]int64, len(m.counters))
	for name, counter := range m.counters {
		result[name] = atomic.LoadInt64(counter)
	}
	return result
}

func (m *InMemoryMetrics) GetGauges() map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]float64, len(m.gauges))
	for name, gauge := range m.gauges {
		result[name] = float64(atomic.LoadInt64(gauge))
	}
	return result
}
