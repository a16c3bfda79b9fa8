package chart

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// rdYlBuScheme is the 11-class ColorBrewer red-yellow-blue diverging scheme.
var rdYlBuScheme = []string{
	"a50026", "d73027", "f46d43", "fdae61", "fee090", "ffffbf",
	"e0f3f8", "abd9e9", "74add1", "4575b4", "313695",
}

var rdYlBuRamp = newBasisRamp(rdYlBuScheme)

// Interpolator maps t in [0, 1] onto a color.
type Interpolator func(t float64) drawing.Color

// RdYlBu runs from red at 0 through yellow to blue at 1.
func RdYlBu(t float64) drawing.Color {
	return rdYlBuRamp(t)
}

// Reverse flips an interpolator so 0 and 1 swap ends.
func Reverse(interp Interpolator) Interpolator {
	return func(t float64) drawing.Color {
		return interp(1 - t)
	}
}

// CSS formats a color as an rgb() string.
func CSS(c drawing.Color) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// newBasisRamp interpolates each channel of the scheme with a uniform cubic
// B-spline, so the ramp passes smoothly through the scheme rather than
// linearly between stops.
func newBasisRamp(hexes []string) Interpolator {
	r := make([]float64, len(hexes))
	g := make([]float64, len(hexes))
	b := make([]float64, len(hexes))
	for i, h := range hexes {
		c := drawing.ColorFromHex(h)
		r[i], g[i], b[i] = float64(c.R), float64(c.G), float64(c.B)
	}
	return func(t float64) drawing.Color {
		return drawing.Color{
			R: channel(basisSpline(r, t)),
			G: channel(basisSpline(g, t)),
			B: channel(basisSpline(b, t)),
			A: 255,
		}
	}
}

func basisSpline(values []float64, t float64) float64 {
	n := len(values) - 1
	var i int
	switch {
	case t <= 0:
		t = 0
		i = 0
	case t >= 1:
		t = 1
		i = n - 1
	default:
		i = int(math.Floor(t * float64(n)))
	}

	v1, v2 := values[i], values[i+1]
	v0 := 2*v1 - v2
	if i > 0 {
		v0 = values[i-1]
	}
	v3 := 2*v2 - v1
	if i < n-1 {
		v3 = values[i+2]
	}
	return basis((t-float64(i)/float64(n))*float64(n), v0, v1, v2, v3)
}

func basis(t1, v0, v1, v2, v3 float64) float64 {
	t2 := t1 * t1
	t3 := t2 * t1
	return ((1-3*t1+3*t2-t3)*v0 +
		(4-6*t2+3*t3)*v1 +
		(1+3*t1+3*t2-3*t3)*v2 +
		t3*v3) / 6
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// SequentialScale maps a temperature range onto a color ramp.
type SequentialScale struct {
	min, max float64
	interp   Interpolator
}

// NewTemperatureScale maps min to the coldest blue and max to the hottest red.
func NewTemperatureScale(min, max float64) SequentialScale {
	return SequentialScale{min: min, max: max, interp: Reverse(RdYlBu)}
}

// Color evaluates the scale at v. A degenerate domain yields the midpoint color.
func (s SequentialScale) Color(v float64) drawing.Color {
	t := 0.5
	if s.max != s.min {
		t = (v - s.min) / (s.max - s.min)
	}
	return s.interp(t)
}

// Fill is Color formatted for an SVG fill attribute.
func (s SequentialScale) Fill(v float64) string {
	return CSS(s.Color(v))
}

func (s SequentialScale) Domain() (float64, float64) { return s.min, s.max }
