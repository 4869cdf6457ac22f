package check

import "github.com/osmcheck/sinkscan/graph"

// Eligible reports whether an edge participates in traversal at all.
// Ineligible edges are invisible to the search: they are neither seeds nor
// counted as a way out of a node.
//
// Airport taxiways and runways are skipped because they routinely form
// closed clusters; ferries and highway=area polygons are not drivable road.
func Eligible(e *graph.Edge) bool {
	return !e.IsAerialWay() &&
		e.Highway().IsCarNavigable() &&
		!e.IsFerryRoute() &&
		!e.IsTaggedArea()
}
