package utils

import "math"

// RoundTo rounds to the given number of decimal places, half away from zero.
func RoundTo(value float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(value*shift) / shift
}
