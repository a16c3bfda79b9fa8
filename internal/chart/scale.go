package chart

import (
	"math"
)

// BandScale maps a discrete domain onto equal-width padded bands along an
// axis. Padding applies both between bands and at the outer edges, and the
// bands are centred in the range.
type BandScale struct {
	domain    []int
	positions map[int]float64
	step      float64
	bandwidth float64
}

// NewBandScale builds a band scale over domain (in the given order) spanning
// r0..r1. A reversed range (r1 < r0) assigns the first domain value the band
// closest to r0.
func NewBandScale(domain []int, r0, r1, padding float64) BandScale {
	n := float64(len(domain))
	reverse := r1 < r0
	start, stop := r0, r1
	if reverse {
		start, stop = r1, r0
	}

	step := (stop - start) / math.Max(1, n-padding+padding*2)
	start += (stop - start - step*(n-padding)) * 0.5

	b := BandScale{
		domain:    append([]int(nil), domain...),
		positions: make(map[int]float64, len(domain)),
		step:      step,
		bandwidth: step * (1 - padding),
	}
	last := len(domain) - 1
	for i, v := range domain {
		idx := i
		if reverse {
			idx = last - i
		}
		b.positions[v] = start + step*float64(idx)
	}
	return b
}

// Position returns the start of the band for v.
func (b BandScale) Position(v int) (float64, bool) {
	p, ok := b.positions[v]
	return p, ok
}

// Center returns the middle of the band for v, where axis ticks sit.
func (b BandScale) Center(v int) (float64, bool) {
	p, ok := b.positions[v]
	return p + b.bandwidth/2, ok
}

func (b BandScale) Bandwidth() float64 { return b.bandwidth }
func (b BandScale) Step() float64      { return b.step }
func (b BandScale) Domain() []int      { return append([]int(nil), b.domain...) }

// LinearScale maps a continuous domain onto a continuous range.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map returns the range value for x. A degenerate domain maps everything to
// the middle of the range.
func (s LinearScale) Map(x float64) float64 {
	t := 0.5
	if s.d1 != s.d0 {
		t = (x - s.d0) / (s.d1 - s.d0)
	}
	return s.r0 + t*(s.r1-s.r0)
}

func (s LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }
func (s LinearScale) Range() (float64, float64)  { return s.r0, s.r1 }

// Ticks returns roughly count human-friendly values inside the domain.
func (s LinearScale) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns about count evenly spaced values between start and stop whose
// step is 1, 2 or 5 times a power of ten. The actual count may differ from
// the requested one so the values stay round.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	lo, hi := start, stop
	if reverse {
		lo, hi = stop, start
	}
	i1, i2, inc := tickRange(lo, hi, float64(count))
	if i2 < i1 {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i1 + float64(i)
		if reverse {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

func tickRange(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = jsRound(start * inc)
		i2 = jsRound(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = jsRound(start / inc)
		i2 = jsRound(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickRange(start, stop, count*2)
	}
	return i1, i2, inc
}

// jsRound rounds half-way cases towards positive infinity.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}
