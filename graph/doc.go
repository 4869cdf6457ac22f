// Package graph holds the directed road network model the scan runs against:
// nodes, directed edges, closed areas, adjacency lookups and a coarse spatial
// index for area queries.
//
// Edges are directed. A two-way road is a pair of edges linked via
// Edge.Reversed; by convention the reverse carries the negated identifier.
// Adjacency is derived from endpoint node identity, so an edge whose recorded
// endpoints disagree with the adjacency tables is simply not returned rather
// than failing the traversal.
package graph
