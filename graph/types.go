package graph

import (
	"fmt"

	"github.com/osmcheck/sinkscan/tags"
)

// NodeID is the stable identifier of a graph vertex.
type NodeID int64

// EdgeID is the stable identifier of a directed edge. The reverse edge of a
// two-way road carries the negated forward identifier.
type EdgeID int64

// Node is a graph vertex with its tag map.
type Node struct {
	id       NodeID
	location Point
	tags     map[string]string
}

// ID returns the node identifier.
func (n *Node) ID() NodeID { return n.id }

// Location returns the node position.
func (n *Node) Location() Point { return n.location }

// Tag returns the value for key, or "" when absent.
func (n *Node) Tag(key string) string { return n.tags[key] }

// Tags returns a copy of the node's tag map.
func (n *Node) Tags() map[string]string { return copyTags(n.tags) }

// IsSyntheticBoundary reports whether the node was introduced by upstream
// partitioning of the network.
func (n *Node) IsSyntheticBoundary() bool {
	return n.tags[tags.KeySyntheticBoundaryNode] != ""
}

// Edge is a directed arc between two nodes.
type Edge struct {
	id       EdgeID
	start    *Node
	end      *Node
	highway  tags.HighwayTag
	line     PolyLine
	tags     map[string]string
	reversed *Edge
	network  *Network
}

// ID returns the edge identifier.
func (e *Edge) ID() EdgeID { return e.id }

// Start returns the node the edge leaves from.
func (e *Edge) Start() *Node { return e.start }

// End returns the node the edge arrives at.
func (e *Edge) End() *Node { return e.end }

// Highway returns the road-importance classification.
func (e *Edge) Highway() tags.HighwayTag { return e.highway }

// Line returns the edge geometry. When no shape points were supplied the line
// is the two endpoints.
func (e *Edge) Line() PolyLine { return e.line }

// Bounds returns the bounding box of the edge geometry.
func (e *Edge) Bounds() Rect { return e.line.Bounds() }

// Tag returns the value for key, or "" when absent.
func (e *Edge) Tag(key string) string { return e.tags[key] }

// Tags returns a copy of the edge's tag map.
func (e *Edge) Tags() map[string]string { return copyTags(e.tags) }

// Reversed returns the paired opposite-direction edge, or nil for one-ways.
func (e *Edge) Reversed() *Edge { return e.reversed }

// Network returns the network the edge belongs to.
func (e *Edge) Network() *Network { return e.network }

// HasServiceTag reports whether the edge carries a non-empty service subtype.
func (e *Edge) HasServiceTag() bool { return e.tags[tags.KeyService] != "" }

// IsFerryRoute reports whether the edge is part of a ferry route.
func (e *Edge) IsFerryRoute() bool { return e.tags[tags.KeyRoute] == tags.ValueFerry }

// IsTaggedArea reports whether the edge is a closed polygon mislabeled as a
// road line.
func (e *Edge) IsTaggedArea() bool { return e.tags[tags.KeyArea] == tags.ValueYes }

// IsAerialWay reports whether the edge is an airport taxiway or runway.
func (e *Edge) IsAerialWay() bool {
	switch e.tags[tags.KeyAeroway] {
	case tags.ValueTaxiway, tags.ValueRunway:
		return true
	}
	return false
}

// OutEdges returns the edges leaving the end node. For a two-way road this
// includes the paired reverse edge: driving back the way you came is a way
// out.
func (e *Edge) OutEdges() []*Edge { return e.network.outEdges(e.end) }

// InEdges returns the edges arriving at the start node.
func (e *Edge) InEdges() []*Edge { return e.network.inEdges(e.start) }

// ConnectedEdges returns all edges touching either endpoint, excluding e
// itself and its reverse pair.
func (e *Edge) ConnectedEdges() []*Edge { return e.network.connectedEdges(e) }

func (e *Edge) String() string {
	return fmt.Sprintf("Edge(%d %d->%d %s)", e.id, e.start.id, e.end.id, e.highway)
}

// Area is a closed polygonal region with tags.
type Area struct {
	id      int64
	polygon Polygon
	tags    map[string]string
}

// ID returns the area identifier.
func (a *Area) ID() int64 { return a.id }

// Polygon returns the area ring.
func (a *Area) Polygon() Polygon { return a.polygon }

// Tag returns the value for key, or "" when absent.
func (a *Area) Tag(key string) string { return a.tags[key] }

// Tags returns a copy of the area's tag map.
func (a *Area) Tags() map[string]string { return copyTags(a.tags) }

// Bounds returns the bounding box of the ring.
func (a *Area) Bounds() Rect { return a.polygon.Bounds() }
