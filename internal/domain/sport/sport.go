// Package sport defines the closed set of sports the planner tracks and
// the mapping from provider activity types.
package sport

import "strings"

// Sport is one of the supported endurance sports. The zero value is
// Unknown so an unmapped provider type never masquerades as a real sport.
type Sport int

const (
	Unknown Sport = iota
	Running
	Cycling
	Swimming
)

// All lists the supported sports in their fixed display order. Unknown is
// excluded; aggregation and matching never bucket under it.
func All() []Sport {
	return []Sport{Running, Cycling, Swimming}
}

// String returns the canonical display name.
func (s Sport) String() string {
	switch s {
	case Running:
		return "Running"
	case Cycling:
		return "Cycling"
	case Swimming:
		return "Swimming"
	default:
		return ""
	}
}

// Supported reports whether s is one of the closed set.
func (s Sport) Supported() bool {
	return s == Running || s == Cycling || s == Swimming
}

// FromName maps a stored sport name back to the enum. Unrecognized names
// map to Unknown.
func FromName(name string) Sport {
	for _, s := range All() {
		if s.String() == name {
			return s
		}
	}
	return Unknown
}

// FromActivityType maps a provider activity type to a Sport. The mapping
// is total: anything outside the supported set maps to Unknown.
func FromActivityType(activityType string) Sport {
	switch strings.ToLower(strings.TrimSpace(activityType)) {
	case "running", "run":
		return Running
	case "cycling", "ride", "biking":
		return Cycling
	case "swimming", "swim", "open_water_swimming":
		return Swimming
	default:
		return Unknown
	}
}
