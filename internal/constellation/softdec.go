package constellation

import (
	"fmt"
	"math"
	"math/bits"
)

// SoftDecoder computes per-bit log-likelihood ratios for a constellation,
// either exactly per sample or through a precomputed quantized grid. The
// lifecycle is two-phase: a fresh decoder has no LUT and computes exactly;
// BuildLUT or SetLUT installs a grid, after which SoftDecision is an O(1)
// lookup. Building must not run concurrently with queries.
type SoftDecoder struct {
	c *Constellation
	k int // bits per symbol

	lut                        [][]float64
	lutScale                   int // 2^precision cells per axis
	precision                  int
	reMin, reMax, imMin, imMax float64
}

// NewSoftDecoder returns a soft decoder over c. The constellation must have
// dimensionality 1 and a power-of-two arity, so that every symbol index is a
// log2(arity)-bit pattern.
func NewSoftDecoder(c *Constellation) (*SoftDecoder, error) {
	if c.Dimensionality() != 1 {
		return nil, fmt.Errorf("%w: soft decisions need dimensionality 1, got %d",
			ErrInvalidConfig, c.Dimensionality())
	}
	if c.Arity()&(c.Arity()-1) != 0 {
		return nil, fmt.Errorf("%w: arity %d is not a power of two",
			ErrInvalidConfig, c.Arity())
	}
	return &SoftDecoder{c: c, k: bits.Len(uint(c.Arity())) - 1}, nil
}

// Constellation returns the underlying constellation.
func (s *SoftDecoder) Constellation() *Constellation { return s.c }

// BitsPerSymbol returns log2(arity), the length of every reliability vector.
func (s *SoftDecoder) BitsPerSymbol() int { return s.k }

// Exact computes the log-likelihood ratio of every bit for one sample. Each
// symbol contributes exp(-dist^2 / (2*noisePower*scale^2)) to the zero or
// one bucket of each bit of its code (the pre-diff code when configured, the
// raw index otherwise). Output position k-1-j holds the ratio for bit j of
// the code; downstream consumers depend on this reversed order.
func (s *SoftDecoder) Exact(sample complex128, noisePower float64) []float64 {
	zero := make([]float64, s.k)
	one := make([]float64, s.k)
	scale := s.c.scale * s.c.scale
	code := s.c.preDiffCode

	for i, p := range s.c.points {
		d := sample - p
		dist := real(d)*real(d) + imag(d)*imag(d)
		w := math.Exp(-dist / (2 * noisePower * scale))
		bitsOf := i
		if len(code) != 0 {
			bitsOf = code[i]
		}
		for j := 0; j < s.k; j++ {
			if bitsOf>>j&1 == 1 {
				one[j] += w
			} else {
				zero[j] += w
			}
		}
	}

	llr := make([]float64, s.k)
	for j := 0; j < s.k; j++ {
		llr[s.k-1-j] = (math.Log(one[j]) - math.Log(zero[j])) * scale
	}
	return llr
}

// BuildLUT precomputes a 2^precision x 2^precision grid of reliability
// vectors over the constellation's bounding box, evaluating Exact at each
// cell's lower-left corner with the given noise power. It replaces any
// previously installed grid wholesale.
func (s *SoftDecoder) BuildLUT(precision int, noisePower float64) error {
	if precision < 1 || precision > 16 {
		return fmt.Errorf("%w: LUT precision %d", ErrInvalidConfig, precision)
	}
	scale := 1 << precision
	reMin, reMax, imMin, imMax := s.c.maxMinAxes()
	xstep := (reMax - reMin) / float64(scale)
	ystep := (imMax - imMin) / float64(scale)

	lut := make([][]float64, scale*scale)
	for iy := 0; iy < scale; iy++ {
		y := imMin + float64(iy)*ystep
		for ix := 0; ix < scale; ix++ {
			x := reMin + float64(ix)*xstep
			lut[iy*scale+ix] = s.Exact(complex(x, y), noisePower)
		}
	}

	s.lut = lut
	s.lutScale = scale
	s.precision = precision
	s.reMin, s.reMax, s.imMin, s.imMax = reMin, reMax, imMin, imMax
	return nil
}

// SetLUT installs a caller-supplied grid in place of a computed one. The
// grid must hold 2^precision * 2^precision cells of BitsPerSymbol()-length
// vectors; on failure the previous grid stays installed.
func (s *SoftDecoder) SetLUT(lut [][]float64, precision int) error {
	if precision < 1 || precision > 16 {
		return fmt.Errorf("%w: LUT precision %d", ErrInvalidConfig, precision)
	}
	scale := 1 << precision
	if len(lut) != scale*scale {
		return fmt.Errorf("%w: LUT has %d cells, want %d for precision %d",
			ErrInvalidConfig, len(lut), scale*scale, precision)
	}
	for i, cell := range lut {
		if len(cell) != s.k {
			return fmt.Errorf("%w: LUT cell %d holds %d values, want %d",
				ErrInvalidConfig, i, len(cell), s.k)
		}
	}

	s.lut = lut
	s.lutScale = scale
	s.precision = precision
	s.reMin, s.reMax, s.imMin, s.imMax = s.c.maxMinAxes()
	return nil
}

// HasLUT reports whether a grid is installed.
func (s *SoftDecoder) HasLUT() bool { return s.lut != nil }

// Precision returns the installed grid's precision, or 0 when none is
// installed.
func (s *SoftDecoder) Precision() int { return s.precision }

// SoftDecision returns the reliability vector for a sample. With a LUT
// installed the sample is clamped into the grid's bounding box and the
// stored cell vector is returned without allocating; the caller must not
// modify it. Without a LUT the exact computation runs with noise power 1.
func (s *SoftDecoder) SoftDecision(sample complex128) ([]float64, error) {
	if !s.HasLUT() {
		return s.Exact(sample, 1), nil
	}

	re := math.Min(s.reMax, math.Max(s.reMin, real(sample)))
	im := math.Min(s.imMax, math.Max(s.imMin, imag(sample)))

	xstep := (s.reMax - s.reMin) / float64(s.lutScale)
	ystep := (s.imMax - s.imMin) / float64(s.lutScale)
	cellX := int(math.Floor((re - s.reMin) / xstep))
	cellY := int(math.Floor((im - s.imMin) / ystep))
	if cellX >= s.lutScale {
		cellX = s.lutScale - 1
	}
	if cellY >= s.lutScale {
		cellY = s.lutScale - 1
	}

	index := cellY*s.lutScale + cellX
	if index >= len(s.lut) {
		index = len(s.lut) - 1
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: LUT index %d for sample %v", ErrOutOfRange, index, sample)
	}
	return s.lut[index], nil
}
