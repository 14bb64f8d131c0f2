// Package units converts between the canonical storage units (miles,
// hours) and the units providers and displays use.
package units

import (
	"fmt"
	"strings"
)

const (
	metersPerMile = 1609.34
	yardsPerMile  = 1760.0
	kmPerMile     = 1.60934
)

// MetersToMiles converts a distance in meters to miles.
func MetersToMiles(meters float64) float64 {
	return meters / metersPerMile
}

// MilesToMeters converts a distance in miles to meters.
func MilesToMeters(miles float64) float64 {
	return miles * metersPerMile
}

// MilesToKm converts a distance in miles to kilometers.
func MilesToKm(miles float64) float64 {
	return miles * kmPerMile
}

// KmToMiles converts a distance in kilometers to miles.
func KmToMiles(km float64) float64 {
	return km / kmPerMile
}

// MilesToYards converts miles to yards. Swimming distances display in
// yards even when other sports display in miles.
func MilesToYards(miles float64) float64 {
	return miles * yardsPerMile
}

// FormatCompact renders a value with at most one decimal place, using K
// and M suffixes for thousands and millions. Used for chart axis labels.
func FormatCompact(v float64) string {
	switch {
	case v >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", v/1_000_000)) + "M"
	case v >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", v/1_000)) + "K"
	default:
		return trimZero(fmt.Sprintf("%.1f", v))
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
