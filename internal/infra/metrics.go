package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	requestsTotal   atomic.Uint64
	fixturesServed  atomic.Uint64
	quotesGenerated atomic.Uint64
	notFoundTotal   atomic.Uint64

	// Gauges
	activeStreams atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordRequest records an inbound HTTP request.
func (m *Metrics) RecordRequest() {
	m.requestsTotal.Add(1)
}

// RecordFixtureServed records a fixture file response.
func (m *Metrics) RecordFixtureServed() {
	m.fixturesServed.Add(1)
}

// RecordQuoteGenerated records a synthetic quote response.
func (m *Metrics) RecordQuoteGenerated() {
	m.quotesGenerated.Add(1)
}

// RecordNotFound records a not-found response.
func (m *Metrics) RecordNotFound() {
	m.notFoundTotal.Add(1)
}

// IncrementStreams increments active stream connections by 1.
func (m *Metrics) IncrementStreams() {
	m.activeStreams.Add(1)
}

// DecrementStreams decrements active stream connections by 1.
func (m *Metrics) DecrementStreams() {
	m.activeStreams.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	RequestsTotal   uint64
	FixturesServed  uint64
	QuotesGenerated uint64
	NotFoundTotal   uint64
	ActiveStreams   int32
	Timestamp       time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:   m.requestsTotal.Load(),
		FixturesServed:  m.fixturesServed.Load(),
		QuotesGenerated: m.quotesGenerated.Load(),
		NotFoundTotal:   m.notFoundTotal.Load(),
		ActiveStreams:   m.activeStreams.Load(),
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.requestsTotal.Store(0)
	m.fixturesServed.Store(0)
	m.quotesGenerated.Store(0)
	m.notFoundTotal.Store(0)
	m.activeStreams.Store(0)
}
