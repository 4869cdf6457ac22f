// Package check implements sink-island detection for a single seed edge: the
// eligibility filter deciding which edges exist for the traversal, the
// exclusion heuristics that abort a search on known false-positive patterns,
// and the bounded breadth-first frontier search itself.
//
// A SinkIsland check holds a shared ledger of already-classified edges.
// Every search records the edges it touched there, so across a full-network
// scan each edge is classified exactly once no matter how many seeds fall
// into the same island.
package check
