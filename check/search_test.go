package check

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmcheck/sinkscan/graph"
	"github.com/osmcheck/sinkscan/ledger"
	"github.com/osmcheck/sinkscan/tags"
)

func newCheck(t *testing.T, treeSize int) (*SinkIsland, *ledger.Ledger) {
	t.Helper()
	flags := ledger.New()
	c, err := New(Config{TreeSize: treeSize, MinimumHighwayType: tags.HighwayService}, flags)
	require.NoError(t, err)
	return c, flags
}

func addNodes(t *testing.T, g *graph.Network, ids ...graph.NodeID) {
	t.Helper()
	for i, id := range ids {
		_, err := g.AddNode(id, graph.Point{Lat: float64(i) * 0.0001, Lon: float64(i) * 0.0001}, nil)
		require.NoError(t, err)
	}
}

func oneWay(t *testing.T, g *graph.Network, id graph.EdgeID, from, to graph.NodeID) *graph.Edge {
	t.Helper()
	e, err := g.AddEdge(id, from, to, tags.HighwayResidential, nil, nil)
	require.NoError(t, err)
	return e
}

func edgeIDs(edges []*graph.Edge) []graph.EdgeID {
	ids := make([]graph.EdgeID, len(edges))
	for i, e := range edges {
		ids[i] = e.ID()
	}
	return ids
}

func TestNew(t *testing.T) {
	t.Run("RejectsBadTreeSize", func(t *testing.T) {
		_, err := New(Config{TreeSize: 0}, ledger.New())
		require.ErrorIs(t, err, ErrInvalidTreeSize)

		_, err = New(Config{TreeSize: -5}, ledger.New())
		require.ErrorIs(t, err, ErrInvalidTreeSize)
	})

	t.Run("RejectsNilLedger", func(t *testing.T) {
		_, err := New(DefaultConfig(), nil)
		require.ErrorIs(t, err, ErrNilLedger)
	})

	t.Run("DefaultsMinimumHighway", func(t *testing.T) {
		c, err := New(Config{TreeSize: 10}, ledger.New())
		require.NoError(t, err)
		assert.Equal(t, 10, c.TreeSize())
	})
}

func TestScenarioSimpleDeadEnd(t *testing.T) {
	// A->B->C, C has no eligible out edges: the whole chain is one island.
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2, 3)
	ab := oneWay(t, g, 10, 1, 2)
	bc := oneWay(t, g, 11, 2, 3)

	c, flags := newCheck(t, 50)
	require.True(t, c.AdmitSeed(ab))

	res := c.Explore(ab)
	require.Equal(t, Island, res.Outcome)
	assert.Equal(t, []graph.EdgeID{10, 11}, edgeIDs(res.Edges))
	assert.Equal(t, 2, res.Flagged)

	for _, e := range []*graph.Edge{ab, bc} {
		assert.True(t, flags.IsFlagged(int64(e.ID())))
	}
}

func TestScenarioLoopWithExitAborts(t *testing.T) {
	// A->B->C->A plus C->D where D fans out into a region far larger than
	// the bound. The search must abort and still flag the loop edges.
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2, 3, 4)
	ab := oneWay(t, g, 10, 1, 2)
	bc := oneWay(t, g, 11, 2, 3)
	ca := oneWay(t, g, 12, 3, 1)
	oneWay(t, g, 13, 3, 4)

	// D leads into a chain of 100 further edges.
	prev := graph.NodeID(4)
	for i := 0; i < 100; i++ {
		next := graph.NodeID(100 + i)
		addNodes(t, g, next)
		oneWay(t, g, graph.EdgeID(1000+i), prev, next)
		prev = next
	}

	c, flags := newCheck(t, 10)
	res := c.Explore(ab)

	require.Equal(t, Aborted, res.Outcome)
	assert.Nil(t, res.Edges)

	for _, e := range []*graph.Edge{ab, bc, ca} {
		assert.True(t, flags.IsFlagged(int64(e.ID())), "loop edge %d", e.ID())
	}
}

func TestScenarioEnclosedServiceSeedRejected(t *testing.T) {
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2)

	seed, err := g.AddEdge(10, 1, 2, tags.HighwayService, nil, map[string]string{
		tags.KeyService: "parking_aisle",
	})
	require.NoError(t, err)

	ring := graph.Polygon{{Lat: -0.01, Lon: -0.01}, {Lat: -0.01, Lon: 0.01}, {Lat: 0.01, Lon: 0.01}, {Lat: 0.01, Lon: -0.01}}
	_, err = g.AddArea(500, ring, map[string]string{tags.KeyAmenity: tags.AmenityParking})
	require.NoError(t, err)

	c, flags := newCheck(t, 50)
	assert.False(t, c.AdmitSeed(seed))
	assert.Equal(t, uint64(0), flags.Cardinality())
}

func TestScenarioAlreadyFlaggedSeedRejected(t *testing.T) {
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2)
	ab := oneWay(t, g, 10, 1, 2)

	c, _ := newCheck(t, 50)
	require.True(t, c.AdmitSeed(ab))
	res := c.Explore(ab)
	require.Equal(t, Island, res.Outcome)

	// The edge was classified by the first search; it is no longer a seed.
	assert.False(t, c.AdmitSeed(ab))
}

func TestScenarioBoundaryNodeAborts(t *testing.T) {
	g := graph.NewNetwork()
	_, err := g.AddNode(1, graph.Point{}, nil)
	require.NoError(t, err)
	_, err = g.AddNode(2, graph.Point{Lat: 0.0001}, map[string]string{
		tags.KeySyntheticBoundaryNode: tags.ValueYes,
	})
	require.NoError(t, err)

	// Looks exactly like a dead end, but the end node is a tiling artifact.
	ab := oneWay(t, g, 10, 1, 2)

	c, flags := newCheck(t, 50)
	res := c.Explore(ab)

	require.Equal(t, Aborted, res.Outcome)
	assert.True(t, flags.IsFlagged(10))
}

func TestIsolatedTwoWaySegmentIsIsland(t *testing.T) {
	// A disconnected two-way stub: you can drive back and forth forever
	// but never leave. Both directed edges form the island.
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2)
	fwd, err := g.AddTwoWay(10, 1, 2, tags.HighwayResidential, nil, nil)
	require.NoError(t, err)

	c, _ := newCheck(t, 50)
	res := c.Explore(fwd)

	require.Equal(t, Island, res.Outcome)
	assert.Equal(t, []graph.EdgeID{-10, 10}, edgeIDs(res.Edges))
}

func TestTerminalOnlySeed(t *testing.T) {
	// The seed itself is terminal: single-edge island.
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2)
	ab := oneWay(t, g, 10, 1, 2)

	c, _ := newCheck(t, 50)
	res := c.Explore(ab)

	require.Equal(t, Island, res.Outcome)
	assert.Equal(t, []graph.EdgeID{10}, edgeIDs(res.Edges))
}

func TestVisitsEachEdgeOnce(t *testing.T) {
	// Diamond with a cycle back to the top: every edge reachable, multiple
	// paths to the same edges, still each classified exactly once.
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2, 3, 4)
	oneWay(t, g, 10, 1, 2)
	oneWay(t, g, 11, 1, 3)
	oneWay(t, g, 12, 2, 4)
	oneWay(t, g, 13, 3, 4)
	oneWay(t, g, 14, 4, 1)

	c, flags := newCheck(t, 50)
	seed := g.Edge(10)
	res := c.Explore(seed)

	require.Equal(t, Island, res.Outcome)
	assert.Equal(t, []graph.EdgeID{10, 11, 12, 13, 14}, edgeIDs(res.Edges))
	assert.Equal(t, uint64(5), flags.Cardinality())
}

func TestBoundRespected(t *testing.T) {
	// A long chain: the search may overshoot the bound by at most the
	// branching of the last confirmed interior edge (here 1).
	g := graph.NewNetwork()
	const chain = 200
	addNodes(t, g, 1)
	prev := graph.NodeID(1)
	for i := 0; i < chain; i++ {
		next := graph.NodeID(2 + i)
		addNodes(t, g, next)
		oneWay(t, g, graph.EdgeID(10+i), prev, next)
		prev = next
	}

	const treeSize = 25
	c, flags := newCheck(t, treeSize)
	res := c.Explore(g.Edge(10))

	require.Equal(t, Aborted, res.Outcome)
	assert.LessOrEqual(t, res.Flagged, treeSize+1)
	assert.LessOrEqual(t, int(flags.Cardinality()), treeSize+1)
}

func TestIneligibleOutEdgesAreInvisible(t *testing.T) {
	// B's only ways onward are a footpath and a ferry leg: invisible to the
	// search, so B is a genuine dead end.
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2, 3, 4)
	ab := oneWay(t, g, 10, 1, 2)
	_, err := g.AddEdge(11, 2, 3, tags.HighwayFootway, nil, nil)
	require.NoError(t, err)
	_, err = g.AddEdge(12, 2, 4, tags.HighwayResidential, nil, map[string]string{
		tags.KeyRoute: tags.ValueFerry,
	})
	require.NoError(t, err)

	c, _ := newCheck(t, 50)
	res := c.Explore(ab)

	require.Equal(t, Island, res.Outcome)
	assert.Equal(t, []graph.EdgeID{10}, edgeIDs(res.Edges))
}

func TestDeterministicUnderRepeat(t *testing.T) {
	// Same graph, fresh ledger: identical outcome and member set each time.
	build := func() (*graph.Network, *graph.Edge) {
		g := graph.NewNetwork()
		addNodes(t, g, 1, 2, 3)
		seed := oneWay(t, g, 10, 1, 2)
		oneWay(t, g, 11, 2, 3)
		oneWay(t, g, 12, 3, 1)
		return g, seed
	}

	var first []graph.EdgeID
	for i := 0; i < 3; i++ {
		_, seed := build()
		c, _ := newCheck(t, 50)
		res := c.Explore(seed)
		require.Equal(t, Island, res.Outcome, "run %d", i)
		if first == nil {
			first = edgeIDs(res.Edges)
		} else {
			assert.Equal(t, first, edgeIDs(res.Edges), "run %d", i)
		}
	}
}

func TestSeedBelowMinimumImportance(t *testing.T) {
	g := graph.NewNetwork()
	addNodes(t, g, 1, 2)
	track, err := g.AddEdge(10, 1, 2, tags.HighwayTrack, nil, nil)
	require.NoError(t, err)

	flags := ledger.New()
	c, err := New(Config{TreeSize: 50, MinimumHighwayType: tags.HighwayResidential}, flags)
	require.NoError(t, err)

	assert.False(t, c.AdmitSeed(track), "track is below residential")
}

func ExampleSinkIsland_Explore() {
	g := graph.NewNetwork()
	g.AddNode(1, graph.Point{}, nil)
	g.AddNode(2, graph.Point{Lat: 0.0001}, nil)
	seed, _ := g.AddEdge(10, 1, 2, tags.HighwayResidential, nil, nil)

	c, _ := New(DefaultConfig(), ledger.New())
	res := c.Explore(seed)
	fmt.Println(res.Outcome, len(res.Edges))
	// Output: island 1
}
