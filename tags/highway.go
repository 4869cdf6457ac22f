package tags

import (
	"fmt"
	"strings"
)

// HighwayTag is an ordered road-importance classification. Higher values are
// more important roads. The order follows the OSM highway hierarchy; only the
// car-navigable slice of it participates in traversal.
type HighwayTag uint8

const (
	// HighwayUnknown is the zero value for unclassified or missing highway tags.
	HighwayUnknown HighwayTag = iota
	HighwayFootway
	HighwayPedestrian
	HighwayPath
	HighwaySteps
	HighwayService
	HighwayTrack
	HighwayLivingStreet
	HighwayResidential
	HighwayUnclassified
	HighwayTertiaryLink
	HighwayTertiary
	HighwaySecondaryLink
	HighwaySecondary
	HighwayPrimaryLink
	HighwayPrimary
	HighwayTrunkLink
	HighwayTrunk
	HighwayMotorwayLink
	HighwayMotorway
)

var highwayNames = map[HighwayTag]string{
	HighwayFootway:       "footway",
	HighwayPedestrian:    "pedestrian",
	HighwayPath:          "path",
	HighwaySteps:         "steps",
	HighwayService:       "service",
	HighwayTrack:         "track",
	HighwayLivingStreet:  "living_street",
	HighwayResidential:   "residential",
	HighwayUnclassified:  "unclassified",
	HighwayTertiaryLink:  "tertiary_link",
	HighwayTertiary:      "tertiary",
	HighwaySecondaryLink: "secondary_link",
	HighwaySecondary:     "secondary",
	HighwayPrimaryLink:   "primary_link",
	HighwayPrimary:       "primary",
	HighwayTrunkLink:     "trunk_link",
	HighwayTrunk:         "trunk",
	HighwayMotorwayLink:  "motorway_link",
	HighwayMotorway:      "motorway",
}

var highwayByName = func() map[string]HighwayTag {
	m := make(map[string]HighwayTag, len(highwayNames))
	for tag, name := range highwayNames {
		m[name] = tag
	}
	return m
}()

// ErrUnknownHighwayTag indicates a highway value outside the known hierarchy.
type ErrUnknownHighwayTag struct {
	Value string
}

func (e *ErrUnknownHighwayTag) Error() string {
	return fmt.Sprintf("unknown highway tag: %q", e.Value)
}

// ParseHighwayTag maps an OSM highway value to its classification.
// Matching is case-insensitive. Unknown values are an error so that
// misconfiguration fails fast instead of silently admitting every seed.
func ParseHighwayTag(value string) (HighwayTag, error) {
	tag, ok := highwayByName[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return HighwayUnknown, &ErrUnknownHighwayTag{Value: value}
	}
	return tag, nil
}

// String returns the OSM tag value, or "unknown" for the zero value.
func (h HighwayTag) String() string {
	if name, ok := highwayNames[h]; ok {
		return name
	}
	return "unknown"
}

// AtLeast reports whether h is at or above the importance of other.
func (h HighwayTag) AtLeast(other HighwayTag) bool {
	return h >= other
}

// IsCarNavigable reports whether a motor vehicle can legally drive the road.
func (h HighwayTag) IsCarNavigable() bool {
	switch h {
	case HighwayService, HighwayTrack, HighwayLivingStreet, HighwayResidential,
		HighwayUnclassified, HighwayTertiaryLink, HighwayTertiary,
		HighwaySecondaryLink, HighwaySecondary, HighwayPrimaryLink,
		HighwayPrimary, HighwayTrunkLink, HighwayTrunk,
		HighwayMotorwayLink, HighwayMotorway:
		return true
	default:
		return false
	}
}

// IsPedestrianNavigable reports whether the road is primarily for foot traffic.
func (h HighwayTag) IsPedestrianNavigable() bool {
	switch h {
	case HighwayFootway, HighwayPedestrian, HighwayPath, HighwaySteps:
		return true
	default:
		return false
	}
}
