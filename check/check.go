package check

import (
	"errors"

	"github.com/osmcheck/sinkscan/graph"
	"github.com/osmcheck/sinkscan/ledger"
	"github.com/osmcheck/sinkscan/tags"
)

const (
	// DefaultTreeSize is the default bound on explored+queued edges.
	DefaultTreeSize = 50
)

// DefaultMinimumHighwayType is the least important road class examined as a
// seed. Service roads are in; footpaths and rawer classes are not.
const DefaultMinimumHighwayType = tags.HighwayService

var (
	// ErrInvalidTreeSize is returned for a non-positive tree size.
	ErrInvalidTreeSize = errors.New("check: tree size must be positive")

	// ErrNilLedger is returned when no shared ledger is supplied.
	ErrNilLedger = errors.New("check: ledger must not be nil")
)

// Config carries the tunables of the check.
type Config struct {
	// TreeSize bounds len(explored)+len(candidates); larger reachable
	// regions are treated as healthy network and the search aborts.
	TreeSize int

	// MinimumHighwayType is the least important classification admitted
	// as a seed.
	MinimumHighwayType tags.HighwayTag
}

// DefaultConfig returns the stock configuration (tree size 50, service).
func DefaultConfig() Config {
	return Config{
		TreeSize:           DefaultTreeSize,
		MinimumHighwayType: DefaultMinimumHighwayType,
	}
}

// SinkIsland detects road islands that are impossible to get out of.
// It is safe for concurrent use: all mutable state lives in the ledger.
type SinkIsland struct {
	treeSize   int
	minHighway tags.HighwayTag
	flags      *ledger.Ledger
}

// New validates the configuration and creates a check bound to the shared
// ledger. Configuration errors are fatal by design.
func New(cfg Config, flags *ledger.Ledger) (*SinkIsland, error) {
	if cfg.TreeSize <= 0 {
		return nil, ErrInvalidTreeSize
	}
	if flags == nil {
		return nil, ErrNilLedger
	}
	minHighway := cfg.MinimumHighwayType
	if minHighway == tags.HighwayUnknown {
		minHighway = DefaultMinimumHighwayType
	}
	return &SinkIsland{
		treeSize:   cfg.TreeSize,
		minHighway: minHighway,
		flags:      flags,
	}, nil
}

// TreeSize returns the configured search bound.
func (c *SinkIsland) TreeSize() int { return c.treeSize }

// AdmitSeed decides whether a candidate seed is worth a search: it must be
// eligible for traversal at all, not yet classified by a prior search, at or
// above the minimum importance, and not a service road fully enclosed by an
// excluded amenity area. The enclosure test is the expensive part, which is
// why it runs once per seed here instead of per visited edge.
func (c *SinkIsland) AdmitSeed(seed *graph.Edge) bool {
	return Eligible(seed) &&
		!c.flags.IsFlagged(int64(seed.ID())) &&
		seed.Highway().AtLeast(c.minHighway) &&
		!(isServiceRoad(seed) && withinExcludedAmenityArea(seed))
}
