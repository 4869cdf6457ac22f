package sinkscan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics from scans. Implement it to
// integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSeed is called for every candidate edge; admitted reports
	// whether a search was started from it.
	RecordSeed(admitted bool)

	// RecordSearch is called after each search. island reports whether the
	// search produced a finding, flagged is the number of edges it wrote to
	// the ledger.
	RecordSearch(island bool, flagged int, duration time.Duration)

	// RecordScan is called once per full network scan.
	RecordScan(summary Summary, err error)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSeed(bool)                       {}
func (NoopMetricsCollector) RecordSearch(bool, int, time.Duration) {}
func (NoopMetricsCollector) RecordScan(Summary, error)             {}

// BasicMetricsCollector keeps simple in-memory counters. Useful for tests
// and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SeedsExamined    atomic.Int64
	SeedsRejected    atomic.Int64
	SearchCount      atomic.Int64
	IslandCount      atomic.Int64
	EdgesFlagged     atomic.Int64
	SearchTotalNanos atomic.Int64
	ScanCount        atomic.Int64
	ScanErrors       atomic.Int64
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed(admitted bool) {
	b.SeedsExamined.Add(1)
	if !admitted {
		b.SeedsRejected.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(island bool, flagged int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.EdgesFlagged.Add(int64(flagged))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if island {
		b.IslandCount.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(_ Summary, err error) {
	b.ScanCount.Add(1)
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// GetStats returns a snapshot of the counters.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		SeedsExamined: b.SeedsExamined.Load(),
		SeedsRejected: b.SeedsRejected.Load(),
		SearchCount:   b.SearchCount.Load(),
		IslandCount:   b.IslandCount.Load(),
		EdgesFlagged:  b.EdgesFlagged.Load(),
		ScanCount:     b.ScanCount.Load(),
		ScanErrors:    b.ScanErrors.Load(),
	}
	if stats.SearchCount > 0 {
		stats.SearchAvgNanos = b.SearchTotalNanos.Load() / stats.SearchCount
	}
	return stats
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SeedsExamined  int64
	SeedsRejected  int64
	SearchCount    int64
	IslandCount    int64
	EdgesFlagged   int64
	SearchAvgNanos int64
	ScanCount      int64
	ScanErrors     int64
}
