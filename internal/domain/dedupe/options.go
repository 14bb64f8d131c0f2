package dedupe

// Option applies a configuration option to the BatchDeduper.
type Option func(*BatchDeduper)

// WithDistanceTolerance sets the distance tolerance, in miles, within
// which two same-day same-sport records count as one activity.
func WithDistanceTolerance(miles float64) Option {
	return func(d *BatchDeduper) {
		if miles >= 0 {
			d.distanceToleranceMiles = miles
		}
	}
}
