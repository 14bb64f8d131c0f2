package reconcile

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithDurationTolerance sets the relative duration tolerance, e.g. 0.05
// for five percent.
func WithDurationTolerance(fraction float64) Option {
	return func(m *Matcher) {
		if fraction >= 0 {
			m.durationTolerance = fraction
		}
	}
}

// WithDurationFloor sets the floor, in hours, applied to the relative
// duration test so near-zero durations still compare sanely.
func WithDurationFloor(hours float64) Option {
	return func(m *Matcher) {
		if hours > 0 {
			m.durationFloorHours = hours
		}
	}
}

// WithDistanceTolerance sets the absolute distance tolerance in miles.
func WithDistanceTolerance(miles float64) Option {
	return func(m *Matcher) {
		if miles >= 0 {
			m.distanceToleranceMiles = miles
		}
	}
}

// WithBridgeName sets the bridge name used in imported-workout note
// annotations, e.g. "Apple Health".
func WithBridgeName(name string) Option {
	return func(m *Matcher) {
		if name != "" {
			m.bridgeName = name
		}
	}
}
