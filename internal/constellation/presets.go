package constellation

import "math"

// Fixed, well-known alphabets with closed-form decision rules. Each decider
// slices the sample with sign and magnitude tests only; no distance scan, no
// sector table, no trigonometry on the per-sample path.

const sqrtHalf = math.Sqrt2 / 2

func mustNew(points []complex128, preDiffCode []int, rotationalSymmetry, dimensionality int) *Constellation {
	c, err := New(points, preDiffCode, rotationalSymmetry, dimensionality)
	if err != nil {
		panic(err)
	}
	return c
}

// BPSK is binary phase-shift keying: two points on the real axis.
type BPSK struct {
	c *Constellation
}

// NewBPSK returns a BPSK decider with points -1 and +1.
func NewBPSK() *BPSK {
	return &BPSK{c: mustNew([]complex128{-1, 1}, nil, 2, 1)}
}

// Decide returns 1 for samples in the right half-plane, 0 otherwise.
func (b *BPSK) Decide(sample []complex128) int {
	if real(sample[0]) > 0 {
		return 1
	}
	return 0
}

// Constellation returns the underlying constellation.
func (b *BPSK) Constellation() *Constellation { return b.c }

// QPSK is Gray-coded quadrature phase-shift keying: one point per quadrant,
// the real component carrying the low bit and the imaginary component the
// high bit.
type QPSK struct {
	c *Constellation
}

// NewQPSK returns a Gray-coded QPSK decider.
func NewQPSK() *QPSK {
	points := []complex128{
		complex(-sqrtHalf, -sqrtHalf),
		complex(sqrtHalf, -sqrtHalf),
		complex(-sqrtHalf, sqrtHalf),
		complex(sqrtHalf, sqrtHalf),
	}
	return &QPSK{c: mustNew(points, []int{0x0, 0x2, 0x3, 0x1}, 4, 1)}
}

// Decide slices each axis independently: the real sign is the low bit, the
// imaginary sign the high bit.
func (q *QPSK) Decide(sample []complex128) int {
	idx := 0
	if real(sample[0]) > 0 {
		idx |= 1
	}
	if imag(sample[0]) > 0 {
		idx |= 2
	}
	return idx
}

// Constellation returns the underlying constellation.
func (q *QPSK) Constellation() *Constellation { return q.c }

// DQPSK is QPSK laid out for differential encoding. The indices walk the
// quadrants counterclockwise rather than Gray-coding them; the pre-diff code
// converts to Gray code before the differential encoder downstream.
type DQPSK struct {
	c *Constellation
}

// NewDQPSK returns a DQPSK decider.
func NewDQPSK() *DQPSK {
	points := []complex128{
		complex(sqrtHalf, sqrtHalf),
		complex(-sqrtHalf, sqrtHalf),
		complex(-sqrtHalf, -sqrtHalf),
		complex(sqrtHalf, -sqrtHalf),
	}
	return &DQPSK{c: mustNew(points, []int{0x0, 0x1, 0x3, 0x2}, 4, 1)}
}

// Decide returns the quadrant in counterclockwise order: (+,+) is 0, (-,+)
// is 1, (-,-) is 2, (+,-) is 3. The two axes cannot be sliced independently
// with this layout.
func (d *DQPSK) Decide(sample []complex128) int {
	pos := real(sample[0]) > 0
	if imag(sample[0]) > 0 {
		if pos {
			return 0
		}
		return 1
	}
	if pos {
		return 3
	}
	return 2
}

// Constellation returns the underlying constellation.
func (d *DQPSK) Constellation() *Constellation { return d.c }

// PSK8 is Gray-coded 8-PSK with points at odd multiples of pi/8.
type PSK8 struct {
	c *Constellation
}

// NewPSK8 returns a Gray-coded 8-PSK decider.
func NewPSK8() *PSK8 {
	angle := math.Pi / 8
	mul := []float64{1, 7, 15, 9, 3, 5, 13, 11}
	points := make([]complex128, 8)
	for i, m := range mul {
		points[i] = complex(math.Cos(m*angle), math.Sin(m*angle))
	}
	return &PSK8{c: mustNew(points, nil, 8, 1)}
}

// Decide computes the 3-bit index from a magnitude comparison and two sign
// tests, with no trigonometric call.
func (p *PSK8) Decide(sample []complex128) int {
	re := real(sample[0])
	im := imag(sample[0])
	idx := 0
	if math.Abs(re) <= math.Abs(im) {
		idx = 4
	}
	if re <= 0 {
		idx |= 1
	}
	if im <= 0 {
		idx |= 2
	}
	return idx
}

// Constellation returns the underlying constellation.
func (p *PSK8) Constellation() *Constellation { return p.c }
