package constellation

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MetricKind selects which per-symbol cost vector Metric computes.
type MetricKind int

const (
	// MetricEuclidean emits each symbol's squared Euclidean distance to
	// the sample, for soft-input trellis decoding.
	MetricEuclidean MetricKind = iota
	// MetricHardSymbol emits 0 for the nearest symbol and 1 for all
	// others.
	MetricHardSymbol
	// MetricHardBit is recognized but not implemented.
	MetricHardBit
)

// String returns the metric kind name.
func (k MetricKind) String() string {
	switch k {
	case MetricEuclidean:
		return "euclidean"
	case MetricHardSymbol:
		return "hard-symbol"
	case MetricHardBit:
		return "hard-bit"
	default:
		return "unknown"
	}
}

// Metric fills dst with a per-symbol cost vector of the requested kind.
// dst must hold Arity() entries; the call does not allocate. sample must hold
// Dimensionality() values (unchecked, per the hot-path contract).
func (c *Constellation) Metric(kind MetricKind, sample []complex128, dst []float64) error {
	if len(dst) != c.arity {
		return fmt.Errorf("%w: metric buffer length %d, arity %d",
			ErrInvalidArgument, len(dst), c.arity)
	}
	switch kind {
	case MetricEuclidean:
		c.euclideanMetric(sample, dst)
		return nil
	case MetricHardSymbol:
		c.hardSymbolMetric(sample, dst)
		return nil
	case MetricHardBit:
		return fmt.Errorf("%w: hard-bit metric", ErrNotImplemented)
	default:
		return fmt.Errorf("%w: metric kind %d", ErrInvalidArgument, kind)
	}
}

func (c *Constellation) euclideanMetric(sample []complex128, dst []float64) {
	for s := 0; s < c.arity; s++ {
		dst[s] = c.Distance(s, sample)
	}
}

func (c *Constellation) hardSymbolMetric(sample []complex128, dst []float64) {
	c.euclideanMetric(sample, dst)
	nearest := floats.MinIdx(dst)
	for s := range dst {
		if s == nearest {
			dst[s] = 0
		} else {
			dst[s] = 1
		}
	}
}
