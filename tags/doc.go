// Package tags models the OSM tag vocabulary the sink-island scan depends on:
// the ordered highway classification, amenity values that suppress findings,
// and the raw tag keys consulted on nodes, edges and areas.
package tags
