package constellation

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func qamPoints() []complex128 {
	return []complex128{
		-1 - 1i, 1 - 1i, -1 + 1i, 1 + 1i,
	}
}

func pskPoints(n int) []complex128 {
	points := make([]complex128, n)
	for i := range points {
		points[i] = cmplx.Rect(1, float64(i)*2*math.Pi/float64(n))
	}
	return points
}

func TestSectorTable_MatchesNearestOnCenters(t *testing.T) {
	rect, err := NewRectDecider(qamPoints(), nil, 4, 4, 4, 1, 1)
	if err != nil {
		t.Fatalf("NewRectDecider: %v", err)
	}
	psk, err := NewPSKDecider(pskPoints(8), nil, 32)
	if err != nil {
		t.Fatalf("NewPSKDecider: %v", err)
	}

	for _, d := range []*SectorDecider{rect, psk} {
		c := d.Constellation()
		layout := d.Layout()
		for s := 0; s < layout.Sectors(); s++ {
			want := c.NearestSymbol([]complex128{layout.Center(s)})
			if got := d.Table()[s]; got != want {
				t.Errorf("sector %d: table %d, nearest of center %d", s, got, want)
			}
		}
	}
}

func TestSectorDecider_DecidesByCenter(t *testing.T) {
	d, err := NewPSKDecider(pskPoints(4), nil, 16)
	if err != nil {
		t.Fatalf("NewPSKDecider: %v", err)
	}
	c := d.Constellation()
	layout := d.Layout()

	for s := 0; s < layout.Sectors(); s++ {
		center := layout.Center(s)
		want := c.NearestSymbol([]complex128{center})
		if got := d.Decide([]complex128{center}); got != want {
			t.Errorf("sector %d center %v: Decide = %d, want %d", s, center, got, want)
		}
	}
}

func TestSectorTable_SymbolsInRange(t *testing.T) {
	d, err := NewRectDecider(qamPoints(), nil, 4, 8, 8, 0.5, 0.5)
	if err != nil {
		t.Fatalf("NewRectDecider: %v", err)
	}
	for s, sym := range d.Table() {
		if sym < 0 || sym >= d.Constellation().Arity() {
			t.Errorf("sector %d holds symbol %d", s, sym)
		}
	}
}

func TestRectLayout_SectorCenterRoundTrip(t *testing.T) {
	d, err := NewRectDecider(qamPoints(), nil, 4, 3, 5, 0.8, 0.6)
	if err != nil {
		t.Fatalf("NewRectDecider: %v", err)
	}
	layout := d.Layout()
	for s := 0; s < layout.Sectors(); s++ {
		if got := layout.Sector(layout.Center(s)); got != s {
			t.Errorf("Sector(Center(%d)) = %d", s, got)
		}
	}
}

func TestRectLayout_ClampsOutOfRange(t *testing.T) {
	d, err := NewRectDecider(qamPoints(), nil, 4, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("NewRectDecider: %v", err)
	}

	far := []struct {
		outside, edge complex128
	}{
		{100 + 100i, 0.5 + 0.5i},
		{-100 + 100i, -0.5 + 0.5i},
		{-100 - 100i, -0.5 - 0.5i},
		{100 - 100i, 0.5 - 0.5i},
	}
	for _, tt := range far {
		got := d.Decide([]complex128{tt.outside})
		want := d.Decide([]complex128{tt.edge})
		if got != want {
			t.Errorf("Decide(%v) = %d, edge sample gives %d", tt.outside, got, want)
		}
	}
}

func TestRectLayout_WidthsTrackScaleFactor(t *testing.T) {
	// Points with mean magnitude 2 get scaled by 0.5; sector widths given in
	// original units must shrink with them.
	points := []complex128{
		-2 - 2i, 2 - 2i, -2 + 2i, 2 + 2i,
	}
	d, err := NewRectDecider(points, nil, 4, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("NewRectDecider: %v", err)
	}
	c := d.Constellation()
	for s := 0; s < c.Arity(); s++ {
		if got := d.Decide(c.PointsFor(s)); got != s {
			t.Errorf("Decide(scaled point %d) = %d", s, got)
		}
	}
}

func TestPSKLayout_NegativePhaseWraps(t *testing.T) {
	layout, err := NewPSK(4)
	if err != nil {
		t.Fatalf("NewPSK: %v", err)
	}
	tests := []struct {
		sample complex128
		want   int
	}{
		{1 - 0.01i, 0},   // phase just below 0
		{-0.01 - 1i, 3},  // phase just past -pi/2
		{-1 - 0.01i, 2},  // phase near -pi
		{-1 + 0.01i, 2},  // phase near +pi
		{0.01 + 1i, 1},   // phase near +pi/2
		{0.7 + 0.69i, 0}, // just inside sector 0
	}
	for _, tt := range tests {
		if got := layout.Sector(tt.sample); got != tt.want {
			t.Errorf("Sector(%v) = %d, want %d", tt.sample, got, tt.want)
		}
	}
}

func TestPSKDecider_MatchesExhaustiveOnWedges(t *testing.T) {
	// 60 sectors over 8 points puts no sector center on a decision
	// boundary, and the 0.1-sector sample offset keeps each sample on the
	// same side of every boundary as its sector's center.
	d, err := NewPSKDecider(pskPoints(8), nil, 60)
	if err != nil {
		t.Fatalf("NewPSKDecider: %v", err)
	}
	ref := ExhaustiveOver(d.Constellation())

	for k := 0; k < 60; k++ {
		phase := (float64(k) + 0.1) * 2 * math.Pi / 60
		sample := []complex128{cmplx.Rect(0.9, phase)}
		if got, want := d.Decide(sample), ref.Decide(sample); got != want {
			t.Errorf("phase %.3f: sector decision %d, exhaustive %d", phase, got, want)
		}
	}
}

func TestSetTable_Explicit(t *testing.T) {
	d, err := NewRectDecider(qamPoints(), nil, 4, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("NewRectDecider: %v", err)
	}

	// Invert the computed table.
	computed := append([]int(nil), d.Table()...)
	override := make([]int, len(computed))
	for i, sym := range computed {
		override[i] = d.Constellation().Arity() - 1 - sym
	}
	if err := d.SetTable(override); err != nil {
		t.Fatalf("SetTable: %v", err)
	}
	sample := []complex128{0.5 + 0.5i}
	if got, want := d.Decide(sample), 3-computed[d.Layout().Sector(sample[0])]; got != want {
		t.Errorf("Decide after override = %d, want %d", got, want)
	}

	// Rebuild restores the computed assignments.
	d.Rebuild()
	for s, sym := range d.Table() {
		if sym != computed[s] {
			t.Errorf("sector %d after Rebuild = %d, want %d", s, sym, computed[s])
		}
	}
}

func TestSetTable_Validation(t *testing.T) {
	d, err := NewRectDecider(qamPoints(), nil, 4, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("NewRectDecider: %v", err)
	}
	if err := d.SetTable([]int{0, 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("short table: err = %v, want ErrInvalidConfig", err)
	}
	if err := d.SetTable([]int{0, 1, 2, 7}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("bad symbol: err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewExplicitRectDecider(t *testing.T) {
	table := []int{0, 2, 1, 3}
	d, err := NewExplicitRectDecider(qamPoints(), nil, 4, 2, 2, 2, 2, table)
	if err != nil {
		t.Fatalf("NewExplicitRectDecider: %v", err)
	}
	for s, want := range table {
		if got := d.Table()[s]; got != want {
			t.Errorf("sector %d = %d, want %d", s, got, want)
		}
	}
}

func TestSectorDecider_ConstructionErrors(t *testing.T) {
	if _, err := NewRectDecider(qamPoints(), nil, 4, 0, 2, 1, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero sectors: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewRectDecider(qamPoints(), nil, 4, 2, 2, 0, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero width: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewPSKDecider(pskPoints(4), nil, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero psk sectors: err = %v, want ErrInvalidConfig", err)
	}

	c, err := New([]complex128{1, 1, -1, -1}, nil, 2, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	layout, err := NewPSK(4)
	if err != nil {
		t.Fatalf("NewPSK: %v", err)
	}
	if _, err := NewSectorDecider(c, layout); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("dimensionality 2: err = %v, want ErrInvalidConfig", err)
	}
}
