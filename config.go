package sinkscan

import (
	"fmt"

	"github.com/osmcheck/sinkscan/check"
	"github.com/osmcheck/sinkscan/codec"
	"github.com/osmcheck/sinkscan/tags"
)

// Config carries the scan tunables. The JSON keys match the configuration
// names used by deployments.
type Config struct {
	// TreeSize bounds how many edges one search may hold across its
	// explored set and frontier before giving up.
	TreeSize int `json:"tree.size"`

	// MinimumHighwayType is the least important road classification that
	// can start a search, e.g. "service" or "residential".
	MinimumHighwayType string `json:"minimum.highway.type"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		TreeSize:           check.DefaultTreeSize,
		MinimumHighwayType: check.DefaultMinimumHighwayType.String(),
	}
}

// ParseConfig decodes a configuration document. Absent fields keep their
// defaults; invalid values surface from NewScanner, not here.
func ParseConfig(data []byte, c codec.Codec) (Config, error) {
	if c == nil {
		c = codec.Default
	}
	cfg := DefaultConfig()
	if err := c.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// checkConfig validates and converts to the check package's configuration.
func (c Config) checkConfig() (check.Config, error) {
	if c.TreeSize <= 0 {
		return check.Config{}, &ErrInvalidConfig{Option: "tree.size", cause: check.ErrInvalidTreeSize}
	}

	minHighway := check.DefaultMinimumHighwayType
	if c.MinimumHighwayType != "" {
		var err error
		if minHighway, err = tags.ParseHighwayTag(c.MinimumHighwayType); err != nil {
			return check.Config{}, &ErrInvalidConfig{Option: "minimum.highway.type", cause: err}
		}
	}

	return check.Config{
		TreeSize:           c.TreeSize,
		MinimumHighwayType: minHighway,
	}, nil
}
