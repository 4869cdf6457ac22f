package graph

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/osmcheck/sinkscan/tags"
)

var (
	// ErrUnknownNode is returned when an edge references a node that was
	// never added.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrSelfReverse is returned when an edge is paired with itself.
	ErrSelfReverse = errors.New("graph: edge cannot be its own reverse")
)

// ErrDuplicateID is returned when a node, edge or area identifier is reused.
type ErrDuplicateID struct {
	Kind string
	ID   int64
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("graph: duplicate %s id %d", e.Kind, e.ID)
}

// Network is an in-memory directed road network. It is safe for concurrent
// reads; writes (Add*) must not race with reads.
type Network struct {
	mu    sync.RWMutex
	nodes map[NodeID]*Node
	edges map[EdgeID]*Edge
	out   map[NodeID][]*Edge // edges starting at the node
	in    map[NodeID][]*Edge // edges ending at the node
	areas *areaIndex
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		nodes: make(map[NodeID]*Node),
		edges: make(map[EdgeID]*Edge),
		out:   make(map[NodeID][]*Edge),
		in:    make(map[NodeID][]*Edge),
		areas: newAreaIndex(),
	}
}

// AddNode adds a vertex. Tags may be nil.
func (g *Network) AddNode(id NodeID, location Point, tagMap map[string]string) (*Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; ok {
		return nil, &ErrDuplicateID{Kind: "node", ID: int64(id)}
	}
	n := &Node{id: id, location: location, tags: copyTags(tagMap)}
	g.nodes[id] = n
	return n, nil
}

// AddEdge adds a directed edge from startID to endID. When line is empty the
// geometry defaults to the straight segment between the endpoints.
func (g *Network) AddEdge(id EdgeID, startID, endID NodeID, highway tags.HighwayTag, line PolyLine, tagMap map[string]string) (*Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addEdgeLocked(id, startID, endID, highway, line, tagMap)
}

// AddTwoWay adds a forward edge with the given id plus its reverse pair with
// the negated id and mirrored geometry.
func (g *Network) AddTwoWay(id EdgeID, startID, endID NodeID, highway tags.HighwayTag, line PolyLine, tagMap map[string]string) (*Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id == -id {
		return nil, ErrSelfReverse
	}
	fwd, err := g.addEdgeLocked(id, startID, endID, highway, line, tagMap)
	if err != nil {
		return nil, err
	}
	rev, err := g.addEdgeLocked(-id, endID, startID, highway, reverseLine(fwd.line), tagMap)
	if err != nil {
		return nil, err
	}
	fwd.reversed = rev
	rev.reversed = fwd
	return fwd, nil
}

func (g *Network) addEdgeLocked(id EdgeID, startID, endID NodeID, highway tags.HighwayTag, line PolyLine, tagMap map[string]string) (*Edge, error) {
	if _, ok := g.edges[id]; ok {
		return nil, &ErrDuplicateID{Kind: "edge", ID: int64(id)}
	}
	start, ok := g.nodes[startID]
	if !ok {
		return nil, fmt.Errorf("%w: start %d for edge %d", ErrUnknownNode, startID, id)
	}
	end, ok := g.nodes[endID]
	if !ok {
		return nil, fmt.Errorf("%w: end %d for edge %d", ErrUnknownNode, endID, id)
	}
	if len(line) == 0 {
		line = PolyLine{start.location, end.location}
	}
	e := &Edge{
		id:      id,
		start:   start,
		end:     end,
		highway: highway,
		line:    line,
		tags:    copyTags(tagMap),
		network: g,
	}
	g.edges[id] = e
	g.out[startID] = append(g.out[startID], e)
	g.in[endID] = append(g.in[endID], e)
	return e, nil
}

// AddArea adds a closed polygonal region.
func (g *Network) AddArea(id int64, ring Polygon, tagMap map[string]string) (*Area, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.areas.has(id) {
		return nil, &ErrDuplicateID{Kind: "area", ID: id}
	}
	a := &Area{id: id, polygon: ring, tags: copyTags(tagMap)}
	g.areas.insert(a)
	return a, nil
}

// Edge returns the edge with the given id, or nil.
func (g *Network) Edge(id EdgeID) *Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges[id]
}

// Node returns the node with the given id, or nil.
func (g *Network) Node(id NodeID) *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[id]
}

// NumEdges returns the number of directed edges.
func (g *Network) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Edges returns all directed edges in ascending ID order. The order is a
// convenience for reproducible scans; callers must not attach meaning to it.
func (g *Network) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Nodes returns all nodes in ascending ID order.
func (g *Network) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Areas returns all areas in ascending ID order.
func (g *Network) Areas() []*Area {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Area, len(g.areas.all))
	copy(out, g.areas.all)
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// AreasIntersecting returns areas whose bounds intersect the given bounds and
// that satisfy the filter. A nil filter matches everything.
func (g *Network) AreasIntersecting(bounds Rect, filter func(*Area) bool) []*Area {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.areas.intersecting(bounds, filter)
}

// outEdges returns edges leaving n. Edges whose recorded start disagrees with
// the adjacency table are skipped rather than surfaced.
func (g *Network) outEdges(n *Node) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	src := g.out[n.id]
	out := make([]*Edge, 0, len(src))
	for _, e := range src {
		if e.start == n {
			out = append(out, e)
		}
	}
	return out
}

// inEdges returns edges arriving at n, with the same defensive filtering.
func (g *Network) inEdges(n *Node) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	src := g.in[n.id]
	in := make([]*Edge, 0, len(src))
	for _, e := range src {
		if e.end == n {
			in = append(in, e)
		}
	}
	return in
}

// connectedEdges returns every edge adjacent to e at either endpoint,
// excluding e and its reverse pair.
func (g *Network) connectedEdges(e *Edge) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	seen := map[EdgeID]struct{}{e.id: {}}
	if e.reversed != nil {
		seen[e.reversed.id] = struct{}{}
	}
	var connected []*Edge
	for _, n := range []*Node{e.start, e.end} {
		for _, adj := range g.out[n.id] {
			if _, ok := seen[adj.id]; !ok {
				seen[adj.id] = struct{}{}
				connected = append(connected, adj)
			}
		}
		for _, adj := range g.in[n.id] {
			if _, ok := seen[adj.id]; !ok {
				seen[adj.id] = struct{}{}
				connected = append(connected, adj)
			}
		}
	}
	return connected
}

func copyTags(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func reverseLine(l PolyLine) PolyLine {
	out := make(PolyLine, len(l))
	for i, p := range l {
		out[len(l)-1-i] = p
	}
	return out
}
