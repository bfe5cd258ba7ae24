package model

import "math"

// MaxPricePerNight is the largest nightly cost, in dollars, accepted for a
// listing or a price filter. In cents it still fits the INTEGER
// cost_per_night column.
const MaxPricePerNight = 20_000_000

// ToMinorUnits converts a major-unit amount (dollars) to cents, rounding
// to the nearest cent so 19.99 stores as 1999 and not 1998.
//
// Results beyond the int64 range saturate and NaN maps to 0. Callers
// bound the input by MaxPricePerNight before binding it to a statement.
func ToMinorUnits(major float64) int64 {
	cents := math.Round(major * 100)
	switch {
	case math.IsNaN(cents):
		return 0
	case cents >= math.MaxInt64:
		return math.MaxInt64
	case cents <= math.MinInt64:
		return math.MinInt64
	}
	return int64(cents)
}

// ToMajorUnits converts cents back to dollars.
func ToMajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
