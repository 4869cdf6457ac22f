// Package sinkscan finds sink islands in road networks: connected clusters
// of drivable road that a vehicle can enter but never leave. The classic
// cause is a mapped one-way pointing the wrong direction at the mouth of a
// cul-de-sac or parking lot.
//
// A Scanner walks every candidate road of a network and runs a bounded
// breadth-first search over the edges reachable from it. If the whole
// reachable region fits within the configured tree size and offers no way
// out, the region is reported as one finding. Regions that outgrow the bound
// are assumed to reach the healthy wider network.
//
//	scanner, err := sinkscan.NewScanner(sinkscan.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	summary, err := scanner.Scan(ctx, network)
package sinkscan
