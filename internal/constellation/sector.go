package constellation

import (
	"fmt"
	"math"
	"math/cmplx"
)

// SectorLayout partitions the complex plane into numbered sectors. A layout
// supplies the cheap per-sample sector test and, for the one-time table
// build, a representative center point per sector.
type SectorLayout interface {
	// Sectors returns the total sector count.
	Sectors() int
	// Sector returns the sector index for a sample. Out-of-range samples
	// map to some valid sector (layouts clamp or wrap, never reject).
	Sector(sample complex128) int
	// Center returns the representative point of a sector.
	Center(sector int) complex128
}

// SectorDecider decides symbols through a precomputed sector table: the
// layout assigns the sample a sector in O(1), and the table holds the symbol
// nearest each sector's center. The table is built once at construction and
// is read-only afterwards; Rebuild and SetTable must not run concurrently
// with Decide calls.
type SectorDecider struct {
	c      *Constellation
	layout SectorLayout
	table  []int
}

// NewSectorDecider builds the sector table for layout over c. Sector
// decisions only make sense on the plane, so c must have dimensionality 1.
func NewSectorDecider(c *Constellation, layout SectorLayout) (*SectorDecider, error) {
	if c.Dimensionality() != 1 {
		return nil, fmt.Errorf("%w: sector decisions need dimensionality 1, got %d",
			ErrInvalidConfig, c.Dimensionality())
	}
	if layout.Sectors() < 1 {
		return nil, fmt.Errorf("%w: %d sectors", ErrInvalidConfig, layout.Sectors())
	}
	d := &SectorDecider{
		c:      c,
		layout: layout,
		table:  make([]int, layout.Sectors()),
	}
	d.Rebuild()
	return d, nil
}

// Rebuild re-derives the sector table by nearest-point search on every
// sector center. O(sectors * arity), amortized over all later decisions.
func (d *SectorDecider) Rebuild() {
	center := make([]complex128, 1)
	for s := range d.table {
		center[0] = d.layout.Center(s)
		d.table[s] = d.c.NearestSymbol(center)
	}
}

// SetTable replaces the computed sector table with caller-supplied symbol
// assignments, for hand-tuned decision regions. The table must cover every
// sector and reference only valid symbols.
func (d *SectorDecider) SetTable(table []int) error {
	if len(table) != d.layout.Sectors() {
		return fmt.Errorf("%w: sector table length %d, want %d",
			ErrInvalidConfig, len(table), d.layout.Sectors())
	}
	for s, sym := range table {
		if sym < 0 || sym >= d.c.Arity() {
			return fmt.Errorf("%w: sector %d assigned symbol %d, arity %d",
				ErrInvalidConfig, s, sym, d.c.Arity())
		}
	}
	copy(d.table, table)
	return nil
}

// Table returns the current sector-to-symbol table. The returned slice must
// not be modified.
func (d *SectorDecider) Table() []int { return d.table }

// Layout returns the sector layout in use.
func (d *SectorDecider) Layout() SectorLayout { return d.layout }

// Decide returns the symbol assigned to the sample's sector.
func (d *SectorDecider) Decide(sample []complex128) int {
	return d.table[d.layout.Sector(sample[0])]
}

// Constellation returns the underlying constellation.
func (d *SectorDecider) Constellation() *Constellation { return d.c }

// RectLayout partitions the plane into a grid of fixed-width rectangular
// sectors centered on the origin. Samples outside the grid clamp to the
// nearest edge sector.
type RectLayout struct {
	nReal, nImag int
	wReal, wImag float64 // in scaled units
}

// NewRect returns a rectangular layout for c. The sector widths are given in
// the caller's original point units and are rescaled by the constellation's
// scale factor, so sector geometry tracks the point rescaling.
func NewRect(c *Constellation, realSectors, imagSectors int, widthReal, widthImag float64) (*RectLayout, error) {
	if realSectors < 1 || imagSectors < 1 {
		return nil, fmt.Errorf("%w: %dx%d sectors", ErrInvalidConfig, realSectors, imagSectors)
	}
	if widthReal <= 0 || widthImag <= 0 {
		return nil, fmt.Errorf("%w: sector widths %gx%g", ErrInvalidConfig, widthReal, widthImag)
	}
	return &RectLayout{
		nReal: realSectors,
		nImag: imagSectors,
		wReal: widthReal * c.ScaleFactor(),
		wImag: widthImag * c.ScaleFactor(),
	}, nil
}

// Sectors returns realSectors * imagSectors.
func (l *RectLayout) Sectors() int { return l.nReal * l.nImag }

// Sector returns the grid cell of the sample, clamped to the grid edges.
func (l *RectLayout) Sector(sample complex128) int {
	realSector := int(real(sample)/l.wReal + float64(l.nReal)/2)
	if realSector < 0 {
		realSector = 0
	}
	if realSector >= l.nReal {
		realSector = l.nReal - 1
	}
	imagSector := int(imag(sample)/l.wImag + float64(l.nImag)/2)
	if imagSector < 0 {
		imagSector = 0
	}
	if imagSector >= l.nImag {
		imagSector = l.nImag - 1
	}
	return realSector*l.nImag + imagSector
}

// Center returns the midpoint of a grid cell.
func (l *RectLayout) Center(sector int) complex128 {
	realSector := sector / l.nImag
	imagSector := sector % l.nImag
	return complex(
		(float64(realSector)+0.5-float64(l.nReal)/2)*l.wReal,
		(float64(imagSector)+0.5-float64(l.nImag)/2)*l.wImag,
	)
}

// PSKLayout partitions the plane into equal angular wedges around the
// origin. Phase wraps modulo 2*pi, so every sample lands in a valid sector.
type PSKLayout struct {
	n int
}

// NewPSK returns an n-wedge angular layout.
func NewPSK(n int) (*PSKLayout, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d sectors", ErrInvalidConfig, n)
	}
	return &PSKLayout{n: n}, nil
}

// Sectors returns the wedge count.
func (l *PSKLayout) Sectors() int { return l.n }

// Sector returns the wedge whose midpoint angle is closest to the sample's
// phase.
func (l *PSKLayout) Sector(sample complex128) int {
	width := 2 * math.Pi / float64(l.n)
	sector := int(math.Floor(cmplx.Phase(sample)/width + 0.5))
	sector %= l.n
	if sector < 0 {
		sector += l.n
	}
	return sector
}

// Center returns the unit point at the wedge's midpoint angle.
func (l *PSKLayout) Center(sector int) complex128 {
	phase := float64(sector) * 2 * math.Pi / float64(l.n)
	return cmplx.Rect(1, phase)
}

// NewRectDecider builds a dimensionality-1 constellation and a rectangular
// sector decider over it in one step.
func NewRectDecider(points []complex128, preDiffCode []int, rotationalSymmetry,
	realSectors, imagSectors int, widthReal, widthImag float64) (*SectorDecider, error) {
	c, err := New(points, preDiffCode, rotationalSymmetry, 1)
	if err != nil {
		return nil, err
	}
	layout, err := NewRect(c, realSectors, imagSectors, widthReal, widthImag)
	if err != nil {
		return nil, err
	}
	return NewSectorDecider(c, layout)
}

// NewExplicitRectDecider is NewRectDecider with a caller-supplied sector
// table installed in place of the computed one.
func NewExplicitRectDecider(points []complex128, preDiffCode []int, rotationalSymmetry,
	realSectors, imagSectors int, widthReal, widthImag float64, table []int) (*SectorDecider, error) {
	d, err := NewRectDecider(points, preDiffCode, rotationalSymmetry,
		realSectors, imagSectors, widthReal, widthImag)
	if err != nil {
		return nil, err
	}
	if err := d.SetTable(table); err != nil {
		return nil, err
	}
	return d, nil
}

// NewPSKDecider builds a dimensionality-1 constellation and an angular
// sector decider over it. Rotational symmetry equals the point count, as for
// any plain PSK alphabet.
func NewPSKDecider(points []complex128, preDiffCode []int, nSectors int) (*SectorDecider, error) {
	c, err := New(points, preDiffCode, len(points), 1)
	if err != nil {
		return nil, err
	}
	layout, err := NewPSK(nSectors)
	if err != nil {
		return nil, err
	}
	return NewSectorDecider(c, layout)
}
