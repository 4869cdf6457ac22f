package check

import (
	"github.com/osmcheck/sinkscan/graph"
	"github.com/osmcheck/sinkscan/tags"
)

// shouldAbort reports whether the edge's local context means the search can
// conclude nothing and must stop without a finding:
//
//   - already classified by a prior search: defer to that result;
//   - a service road ending at a parking-style amenity node: driveways into
//     parking facilities legitimately dead-end;
//   - either endpoint synthetically introduced by network partitioning: the
//     truncation itself manufactures dead-ends;
//   - a service road touching a pedestrian-navigable way: driveway/footpath
//     interfaces are not vehicular dead-ends.
func (c *SinkIsland) shouldAbort(e *graph.Edge) bool {
	return c.flags.IsFlagged(int64(e.ID())) ||
		(isServiceRoad(e) && endsAtExcludedAmenity(e)) ||
		e.End().IsSyntheticBoundary() ||
		e.Start().IsSyntheticBoundary() ||
		(isServiceRoad(e) && touchesPedestrianWay(e))
}

// isServiceRoad means service-level classification plus a non-empty service
// subtype; a bare highway=service line without the subtype does not count.
func isServiceRoad(e *graph.Edge) bool {
	return e.Highway() == tags.HighwayService && e.HasServiceTag()
}

func endsAtExcludedAmenity(e *graph.Edge) bool {
	return tags.IsExcludedAmenity(e.End().Tag(tags.KeyAmenity))
}

func touchesPedestrianWay(e *graph.Edge) bool {
	for _, adj := range e.ConnectedEdges() {
		if adj.Highway().IsPedestrianNavigable() {
			return true
		}
	}
	return false
}

// withinExcludedAmenityArea reports whether the edge is fully geometrically
// enclosed by an area tagged with an excluded amenity kind, e.g. a service
// lane drawn inside a parking lot polygon.
func withinExcludedAmenityArea(e *graph.Edge) bool {
	areas := e.Network().AreasIntersecting(e.Bounds(), func(a *graph.Area) bool {
		return tags.IsExcludedAmenity(a.Tag(tags.KeyAmenity))
	})
	for _, a := range areas {
		if a.Polygon().FullyEncloses(e.Line()) {
			return true
		}
	}
	return false
}
