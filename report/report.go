// Package report collects and emits scan findings.
package report

import (
	"context"
	"sync"

	"github.com/osmcheck/sinkscan/graph"
)

// Instruction is the human-readable remediation text attached to every
// finding of this check.
const Instruction = "Road is impossible to get out of."

// Finding is one reported island: the complete set of member edges plus the
// instruction. EdgeIDs is sorted ascending.
type Finding struct {
	EdgeIDs     []int64 `json:"edge_ids"`
	Instruction string  `json:"instruction"`
}

// NewFinding builds a finding from the island's member edges. Edges must
// already be sorted by ID, which is how searches return them.
func NewFinding(edges []*graph.Edge) Finding {
	ids := make([]int64, len(edges))
	for i, e := range edges {
		ids[i] = int64(e.ID())
	}
	return Finding{EdgeIDs: ids, Instruction: Instruction}
}

// Overlaps reports whether the two findings share any member edge. Both edge
// ID slices must be sorted.
func (f Finding) Overlaps(other Finding) bool {
	i, j := 0, 0
	for i < len(f.EdgeIDs) && j < len(other.EdgeIDs) {
		switch {
		case f.EdgeIDs[i] < other.EdgeIDs[j]:
			i++
		case f.EdgeIDs[i] > other.EdgeIDs[j]:
			j++
		default:
			return true
		}
	}
	return false
}

// Reporter receives findings as searches produce them. Implementations must
// be safe for concurrent use; parallel scans report from multiple goroutines.
type Reporter interface {
	Report(ctx context.Context, f Finding) error
}

// Collector is an in-memory Reporter.
type Collector struct {
	mu       sync.Mutex
	findings []Finding
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends the finding.
func (c *Collector) Report(_ context.Context, f Finding) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.findings = append(c.findings, f)
	return nil
}

// Findings returns a copy of everything reported so far.
func (c *Collector) Findings() []Finding {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Finding, len(c.findings))
	copy(out, c.findings)
	return out
}

// Len returns the number of findings reported so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.findings)
}

// Reset drops all collected findings.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.findings = nil
}
