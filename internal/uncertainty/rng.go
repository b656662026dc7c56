package uncertainty

import "math"

// Range is an approximate 95% interval (about +/-2 sigma).
type Range struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Relative builds a range as fractions of v, e.g. Relative(v, 0.7, 1.3).
func Relative(v, lo, hi float64) Range {
	return Range{Low: v * lo, High: v * hi}.ClampLow()
}

// Scale multiplies both bounds by k.
func (r Range) Scale(k float64) Range {
	return Range{Low: r.Low * k, High: r.High * k}
}

// ClampLow forces the lower bound to be non-negative.
func (r Range) ClampLow() Range {
	if r.Low < 0 {
		r.Low = 0
	}
	return r
}

// Clamp restricts both bounds to [lo, hi].
func (r Range) Clamp(lo, hi float64) Range {
	return Range{Low: clamp(r.Low, lo, hi), High: clamp(r.High, lo, hi)}
}

// Sigma is the standard deviation implied by the range width.
func (r Range) Sigma() float64 {
	return (r.High - r.Low) / 4
}

// Variance is Sigma squared.
func (r Range) Variance() float64 {
	s := r.Sigma()
	return s * s
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// Around returns value +/- 2 sigma with the lower bound clamped at zero.
func Around(value, sigma float64) Range {
	return Range{Low: value - 2*sigma, High: value + 2*sigma}.ClampLow()
}

// Combine propagates the ranges of independent addends onto their sum.
func Combine(sum float64, parts ...Range) Range {
	var variance float64
	for _, p := range parts {
		variance += p.Variance()
	}
	return Around(sum, math.Sqrt(variance))
}

// Expand scales the bounds of r by the pedigree factor and re-centres them
// on v: each bound sits as far from v as the scaled bound does. The lower
// bound is clamped at zero.
func Expand(v float64, r Range, factor float64) Range {
	low := v - math.Abs(v-r.Low*factor)
	high := v + math.Abs(r.High*factor-v)
	return Range{Low: low, High: high}.ClampLow()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
