package tags

// Tag keys and values consulted by the scan.
const (
	// KeyHighway is the road classification key on edges.
	KeyHighway = "highway"

	// KeyService is the service-subtype key (driveway, parking_aisle, ...).
	// Its presence marks a genuine service road as opposed to a bare
	// highway=service line.
	KeyService = "service"

	// KeyRoute marks route membership; ValueFerry excludes ferry legs.
	KeyRoute   = "route"
	ValueFerry = "ferry"

	// KeyArea with ValueYes marks a closed polygon mislabeled as a road line.
	KeyArea  = "area"
	ValueYes = "yes"

	// KeyAeroway marks airport infrastructure drawn into the road layer.
	KeyAeroway    = "aeroway"
	ValueTaxiway  = "taxiway"
	ValueRunway   = "runway"

	// KeyAmenity is consulted on end nodes and enclosing areas.
	KeyAmenity = "amenity"

	// KeySyntheticBoundaryNode marks nodes introduced where the network was
	// cut during upstream tiling. Any non-empty value counts.
	KeySyntheticBoundaryNode = "synthetic_boundary_node"
)

// Excluded amenity values: roads ending in (or enclosed by) these legitimately
// dead-end and must not be reported.
const (
	AmenityParking           = "parking"
	AmenityParkingSpace      = "parking_space"
	AmenityMotorcycleParking = "motorcycle_parking"
	AmenityParkingEntrance   = "parking_entrance"
)

var excludedAmenities = map[string]struct{}{
	AmenityParking:           {},
	AmenityParkingSpace:      {},
	AmenityMotorcycleParking: {},
	AmenityParkingEntrance:   {},
}

// IsExcludedAmenity reports whether the amenity value suppresses findings.
func IsExcludedAmenity(value string) bool {
	_, ok := excludedAmenities[value]
	return ok
}
