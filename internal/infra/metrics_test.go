package infra

import (
	"testing"
)

func TestMetrics_Counters(t *testing.T) {
	m := &Metrics{}

	m.RecordRequest()
	m.RecordRequest()
	m.RecordRequest()
	m.RecordFixtureServed()
	m.RecordQuoteGenerated()
	m.RecordNotFound()

	snap := m.Snapshot()

	if snap.RequestsTotal != 3 {
		t.Errorf("Expected 3 requests, got %d", snap.RequestsTotal)
	}
	if snap.FixturesServed != 1 {
		t.Errorf("Expected 1 fixture served, got %d", snap.FixturesServed)
	}
	if snap.QuotesGenerated != 1 {
		t.Errorf("Expected 1 quote generated, got %d", snap.QuotesGenerated)
	}
	if snap.NotFoundTotal != 1 {
		t.Errorf("Expected 1 not-found, got %d", snap.NotFoundTotal)
	}
}

func TestMetrics_Streams(t *testing.T) {
	m := &Metrics{}

	m.IncrementStreams()
	m.IncrementStreams()
	m.IncrementStreams()

	snap := m.Snapshot()
	if snap.ActiveStreams != 3 {
		t.Errorf("Expected 3 streams, got %d", snap.ActiveStreams)
	}

	m.DecrementStreams()
	snap = m.Snapshot()
	if snap.ActiveStreams != 2 {
		t.Errorf("Expected 2 streams, got %d", snap.ActiveStreams)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordRequest()
	m.RecordNotFound()
	m.IncrementStreams()

	m.Reset()
	snap := m.Snapshot()

	if snap.RequestsTotal != 0 {
		t.Error("Expected 0 requests after reset")
	}
	if snap.NotFoundTotal != 0 {
		t.Error("Expected 0 not-found after reset")
	}
	if snap.ActiveStreams != 0 {
		t.Error("Expected 0 streams after reset")
	}
}
