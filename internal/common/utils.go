package common

import (
	"math"
	"strconv"
)

// FormatFixed1 formats v with exactly one decimal place. Values that sit exactly
// halfway between two tenths (x.x5 representable in binary, e.g. 0.25) round
// away from zero, matching how browsers print Number.toFixed(1).
func FormatFixed1(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	abs := math.Abs(v)
	if q := abs * 4; q == math.Trunc(q) && abs*2 != math.Trunc(abs*2) {
		r := math.Round(abs*10) / 10
		return strconv.FormatFloat(math.Copysign(r, v), 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatCelsius renders a temperature the way the chart tooltip shows it.
func FormatCelsius(v float64) string {
	return FormatFixed1(v) + "°C"
}
