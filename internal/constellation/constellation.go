// Package constellation implements symbol decisions for digital modulation:
// mapping received complex samples to the most likely transmitted symbol of a
// modulation alphabet, with optional soft (log-likelihood ratio) output.
//
// The package is a pure computation library with no internal threading. Once
// a constellation and its derived tables are built, all decision, metric and
// query operations are read-only and safe for concurrent use; (re)building a
// sector table or soft-decision LUT must be serialized externally against
// readers of the same instance.
package constellation

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Constellation holds the scaled points of a modulation alphabet together
// with its symbol-to-bit-pattern mapping and geometry metadata. It is
// immutable after construction.
type Constellation struct {
	points      []complex128 // scaled, arity*dim entries, flat
	preDiffCode []int        // empty, or one bit pattern per symbol
	rotSym      int
	dim         int
	arity       int
	scale       float64 // applied once so mean point magnitude is 1
}

// New builds a constellation from caller-supplied points. The points are
// rescaled uniformly so that their mean magnitude is 1. preDiffCode is either
// empty (no mapping) or holds exactly one bit pattern per symbol; it is used
// by differential/gray encoding stages downstream and by the soft-decision
// computation. rotationalSymmetry is metadata for downstream synchronization
// and is not interpreted here. dimensionality is the number of complex
// components per symbol (normally 1).
func New(points []complex128, preDiffCode []int, rotationalSymmetry, dimensionality int) (*Constellation, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty point set", ErrInvalidConfig)
	}
	if dimensionality < 1 {
		return nil, fmt.Errorf("%w: dimensionality %d", ErrInvalidConfig, dimensionality)
	}
	if len(points)%dimensionality != 0 {
		return nil, fmt.Errorf("%w: %d points not a multiple of dimensionality %d",
			ErrInvalidConfig, len(points), dimensionality)
	}
	arity := len(points) / dimensionality
	if len(preDiffCode) != 0 && len(preDiffCode) != arity {
		return nil, fmt.Errorf("%w: pre-diff code length %d, arity %d",
			ErrInvalidConfig, len(preDiffCode), arity)
	}

	var summedMag float64
	for _, p := range points {
		summedMag += cmplx.Abs(p)
	}
	scale := float64(len(points)) / summedMag

	c := &Constellation{
		points:      make([]complex128, len(points)),
		preDiffCode: append([]int(nil), preDiffCode...),
		rotSym:      rotationalSymmetry,
		dim:         dimensionality,
		arity:       arity,
		scale:       scale,
	}
	for i, p := range points {
		c.points[i] = p * complex(scale, 0)
	}
	return c, nil
}

// Arity returns the number of symbols in the alphabet.
func (c *Constellation) Arity() int { return c.arity }

// Dimensionality returns the number of complex components per symbol.
func (c *Constellation) Dimensionality() int { return c.dim }

// RotationalSymmetry returns the number of rotations under which the
// constellation maps to itself.
func (c *Constellation) RotationalSymmetry() int { return c.rotSym }

// ScaleFactor returns the factor applied to the caller's points at
// construction.
func (c *Constellation) ScaleFactor() float64 { return c.scale }

// PreDiffCode returns the per-symbol bit patterns, or nil when no mapping is
// configured. The returned slice must not be modified.
func (c *Constellation) PreDiffCode() []int { return c.preDiffCode }

// Points returns the scaled points as a flat slice of arity*dimensionality
// entries. The returned slice must not be modified.
func (c *Constellation) Points() []complex128 { return c.points }

// SymbolPoints returns the scaled points grouped by symbol.
func (c *Constellation) SymbolPoints() [][]complex128 {
	out := make([][]complex128, c.arity)
	for s := 0; s < c.arity; s++ {
		out[s] = append([]complex128(nil), c.PointsFor(s)...)
	}
	return out
}

// PointsFor returns the point components of one symbol as a subslice of the
// internal table, without allocating. The caller must ensure symbol < Arity()
// and must not modify the result.
func (c *Constellation) PointsFor(symbol int) []complex128 {
	return c.points[symbol*c.dim : (symbol+1)*c.dim]
}

// Distance returns the squared Euclidean distance between sample and the
// given symbol, summed over all dimensionality components. sample must hold
// Dimensionality() values; this is not checked on the per-sample path.
func (c *Constellation) Distance(symbol int, sample []complex128) float64 {
	var dist float64
	base := symbol * c.dim
	for i := 0; i < c.dim; i++ {
		d := sample[i] - c.points[base+i]
		dist += real(d)*real(d) + imag(d)*imag(d)
	}
	return dist
}

// NearestSymbol returns the symbol with minimum Distance to sample, scanning
// all symbols. Ties resolve to the lowest index.
func (c *Constellation) NearestSymbol(sample []complex128) int {
	minIdx := 0
	minDist := c.Distance(0, sample)
	for s := 1; s < c.arity; s++ {
		if d := c.Distance(s, sample); d < minDist {
			minDist = d
			minIdx = s
		}
	}
	return minIdx
}

// maxMinAxes computes the bounding box of the scaled points on the real and
// imaginary axes. When a bound on one axis is exactly zero (purely real or
// purely imaginary constellations), the corresponding bound of the other axis
// is substituted so the box never collapses to zero width.
func (c *Constellation) maxMinAxes() (reMin, reMax, imMin, imMax float64) {
	reMin, imMin = math.Inf(1), math.Inf(1)
	reMax, imMax = math.Inf(-1), math.Inf(-1)
	for _, p := range c.points {
		reMin = math.Min(reMin, real(p))
		reMax = math.Max(reMax, real(p))
		imMin = math.Min(imMin, imag(p))
		imMax = math.Max(imMax, imag(p))
	}
	if imMin == 0 {
		imMin = reMin
	}
	if imMax == 0 {
		imMax = reMax
	}
	if reMin == 0 {
		reMin = imMin
	}
	if reMax == 0 {
		reMax = imMax
	}
	return reMin, reMax, imMin, imMax
}
