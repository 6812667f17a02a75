// Package channel simulates transmission impairments for exercising symbol
// deciders, currently additive white Gaussian noise.
package channel

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jeongseonghan/constel/internal/constellation"
)

// AWGN adds complex white Gaussian noise at a fixed Es/N0, assuming unit
// mean symbol energy (which the constellation scaling provides).
type AWGN struct {
	esN0dB float64
	noise  distuv.Normal
}

// NewAWGN returns a channel at the given Es/N0 in dB, drawing noise from the
// shared random source.
func NewAWGN(esN0dB float64) *AWGN {
	return newAWGN(esN0dB, nil)
}

// NewAWGNSeeded returns a deterministic channel for reproducible runs.
func NewAWGNSeeded(esN0dB float64, seed uint64) *AWGN {
	return newAWGN(esN0dB, rand.NewPCG(seed, 0))
}

func newAWGN(esN0dB float64, src rand.Source) *AWGN {
	sigma := math.Sqrt(math.Pow(10, -esN0dB/10) / 2)
	return &AWGN{
		esN0dB: esN0dB,
		noise:  distuv.Normal{Mu: 0, Sigma: sigma, Src: src},
	}
}

// EsN0dB returns the configured signal-to-noise ratio.
func (a *AWGN) EsN0dB() float64 { return a.esN0dB }

// Sigma returns the per-component noise standard deviation.
func (a *AWGN) Sigma() float64 { return a.noise.Sigma }

// Apply returns the symbol component with noise added to both axes.
func (a *AWGN) Apply(symbol complex128) complex128 {
	return symbol + complex(a.noise.Rand(), a.noise.Rand())
}

// Result summarizes one measurement run.
type Result struct {
	EsN0dB            float64
	Symbols           int
	Errors            int
	SER               float64
	MeanAbsPhaseError float64
}

// Measure sends n uniformly random symbols of the decider's constellation
// through the channel and tallies decision errors and the mean absolute
// phase error reported alongside each decision.
func Measure(d constellation.Decider, ch *AWGN, n int, seed uint64) Result {
	c := d.Constellation()
	rng := rand.New(rand.NewPCG(seed, 1))

	sample := make([]complex128, c.Dimensionality())
	phaseErrs := make([]float64, 0, n)
	errors := 0
	for i := 0; i < n; i++ {
		sym := rng.IntN(c.Arity())
		for j, p := range c.PointsFor(sym) {
			sample[j] = ch.Apply(p)
		}
		got, pe := constellation.DecideWithPhaseError(d, sample)
		if got != sym {
			errors++
		}
		phaseErrs = append(phaseErrs, math.Abs(pe))
	}

	return Result{
		EsN0dB:            ch.EsN0dB(),
		Symbols:           n,
		Errors:            errors,
		SER:               float64(errors) / float64(n),
		MeanAbsPhaseError: stat.Mean(phaseErrs, nil),
	}
}
