package check

import (
	"sort"

	"github.com/osmcheck/sinkscan/graph"
)

// Outcome classifies how a search ended.
type Outcome uint8

const (
	// Aborted means the search stopped without a finding, either because an
	// exclusion fired or because the reachable region outgrew the tree size.
	Aborted Outcome = iota

	// Island means the entire reachable subgraph was enumerated within
	// budget and offers no way out.
	Island
)

func (o Outcome) String() string {
	if o == Island {
		return "island"
	}
	return "aborted"
}

// Result is the outcome of exploring one seed. Edges is populated only for
// Island outcomes and is sorted by edge ID. Flagged is the number of edge
// identifiers the search recorded in the ledger, on either outcome.
type Result struct {
	Outcome Outcome
	Edges   []*graph.Edge
	Flagged int
}

// Explore runs the bounded breadth-first search from seed.
//
// explored holds edges confirmed to have at least one eligible way onward.
// terminal holds edges with none; they join explored only once the whole
// reachable region is known to fit the budget, because a dead end inside a
// too-large region proves nothing. The frontier is strict FIFO and an edge
// ever queued or explored is never queued again.
//
// The size bound is checked only when an interior edge is confirmed:
// terminal edges cannot grow the frontier, so they cannot blow the budget.
//
// On either outcome every edge in explored is recorded in the shared ledger.
// Doing this even on abort means a large healthy region walked once is never
// walked again from another seed — the deliberate price is that terminal
// edges of an aborted search stay unclassified.
func (c *SinkIsland) Explore(seed *graph.Edge) Result {
	explored := map[graph.EdgeID]*graph.Edge{seed.ID(): seed}
	terminal := make(map[graph.EdgeID]*graph.Edge)
	seen := map[graph.EdgeID]struct{}{seed.ID(): {}}
	var queue []*graph.Edge

	aborted := false
	current := seed

	for current != nil {
		if c.shouldAbort(current) {
			aborted = true
			break
		}

		var out []*graph.Edge
		for _, e := range current.OutEdges() {
			if Eligible(e) {
				out = append(out, e)
			}
		}

		if len(out) == 0 {
			terminal[current.ID()] = current
		} else {
			explored[current.ID()] = current

			for _, e := range out {
				if _, ok := seen[e.ID()]; ok {
					continue
				}
				seen[e.ID()] = struct{}{}
				queue = append(queue, e)
			}

			if len(queue)+len(explored) > c.treeSize {
				aborted = true
				break
			}
		}

		if len(queue) == 0 {
			current = nil
		} else {
			current = queue[0]
			queue = queue[1:]
		}
	}

	if !aborted {
		for id, e := range terminal {
			explored[id] = e
		}
	}

	ids := make([]int64, 0, len(explored))
	for id := range explored {
		ids = append(ids, int64(id))
	}
	c.flags.MarkAll(ids)

	res := Result{Outcome: Aborted, Flagged: len(ids)}
	if aborted {
		return res
	}

	res.Outcome = Island
	res.Edges = make([]*graph.Edge, 0, len(explored))
	for _, e := range explored {
		res.Edges = append(res.Edges, e)
	}
	sort.Slice(res.Edges, func(i, j int) bool { return res.Edges[i].ID() < res.Edges[j].ID() })
	return res
}
