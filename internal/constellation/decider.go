package constellation

import "math/cmplx"

// Decider maps a received sample to a symbol index. Implementations differ
// in per-call cost: Exhaustive scans every symbol, sector deciders look up a
// precomputed table, and the fixed-alphabet deciders in presets.go use
// closed-form sign tests. A sample is a slice of Dimensionality() complex
// values; for the usual dimensionality of 1, callers pass a reusable
// one-element slice. Decide never fails on a validly constructed decider.
type Decider interface {
	Decide(sample []complex128) int
	Constellation() *Constellation
}

// DecideWithPhaseError decides a symbol and also returns the phase error of
// the sample relative to the chosen symbol's points: the negated sum over all
// components of arg(sample_i * conj(point_i)). Downstream carrier-phase
// tracking loops consume this value.
func DecideWithPhaseError(d Decider, sample []complex128) (int, float64) {
	idx := d.Decide(sample)
	c := d.Constellation()
	pts := c.PointsFor(idx)
	var pe float64
	for i := 0; i < c.Dimensionality(); i++ {
		pe += -cmplx.Phase(sample[i] * cmplx.Conj(pts[i]))
	}
	return idx, pe
}

// Exhaustive decides by nearest-point search over all symbols. O(arity) per
// call; always correct for any constellation, including multi-dimensional
// ones. It is the reference strategy the faster deciders are checked against.
type Exhaustive struct {
	c *Constellation
}

// NewExhaustive builds a constellation from the given parameters and returns
// an exhaustive-search decider over it.
func NewExhaustive(points []complex128, preDiffCode []int, rotationalSymmetry, dimensionality int) (*Exhaustive, error) {
	c, err := New(points, preDiffCode, rotationalSymmetry, dimensionality)
	if err != nil {
		return nil, err
	}
	return &Exhaustive{c: c}, nil
}

// ExhaustiveOver returns an exhaustive-search decider over an existing
// constellation.
func ExhaustiveOver(c *Constellation) *Exhaustive {
	return &Exhaustive{c: c}
}

// Decide returns the nearest symbol to sample.
func (e *Exhaustive) Decide(sample []complex128) int {
	return e.c.NearestSymbol(sample)
}

// Constellation returns the underlying constellation.
func (e *Exhaustive) Constellation() *Constellation { return e.c }
