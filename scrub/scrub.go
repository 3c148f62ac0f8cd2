package scrub

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/connectome/signal"
)

// Sentinel errors for mask construction and application.
var (
	// ErrEmptySeries indicates an empty motion series.
	ErrEmptySeries = errors.New("scrub: empty motion series")

	// ErrBadWindow indicates a negative trailing window.
	ErrBadWindow = errors.New("scrub: window must be non-negative")

	// ErrBadMotion indicates a NaN or ±Inf motion value.
	ErrBadMotion = errors.New("scrub: motion series contains NaN or Inf")

	// ErrShapeMismatch indicates a mask applied to a matrix whose row count
	// differs from the mask length.
	ErrShapeMismatch = errors.New("scrub: mask length does not match row count")

	// ErrInsufficientData indicates too few timepoints survived scrubbing
	// for reliable downstream estimation.
	ErrInsufficientData = errors.New("scrub: insufficient timepoints after scrubbing")
)

// DefaultThreshold is the motion magnitude above which a timepoint counts
// as a violation, in the units of the input series (typically mm of
// framewise displacement).
const DefaultThreshold = 0.5

// Mask is a per-timepoint retain flag: true = keep the timepoint.
// A Mask is derived once from a motion series and then applied to any
// time-aligned matrix; applying never mutates the target.
type Mask []bool

// Report summarizes the effect of a Mask.
type Report struct {
	Total    int // timepoints in the series
	Retained int // timepoints kept
	Removed  int // timepoints censored
}

// Options configures mask construction.
//
// Threshold — motion magnitude above which a timepoint is a violation.
// Window    — number of trailing timepoints censored after a violation (W ≥ 0).
type Options struct {
	Threshold float64
	Window    int
}

// Option mutates Options before mask construction.
type Option func(*Options)

// DefaultOptions returns Threshold = DefaultThreshold and Window = 0.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Window: 0}
}

// WithThreshold overrides the violation threshold.
func WithThreshold(tau float64) Option {
	return func(o *Options) { o.Threshold = tau }
}

// WithWindow sets the trailing censor window W.
func WithWindow(w int) Option {
	return func(o *Options) { o.Window = w }
}

// BuildMask derives a retain Mask from a motion-magnitude series.
//
// For every violation v (motion[v] > threshold) the inclusive range
// [v−1, v+W] is censored, clipped to [0, T−1]. The look-back of exactly one
// sample is deliberate: interpolation and filtering smear motion artifact
// into the immediately preceding frame.
//
// Errors: ErrEmptySeries, ErrBadWindow, ErrBadMotion.
// Complexity: O(T·W) worst case, O(T) for sparse violations.
func BuildMask(motion []float64, opts ...Option) (Mask, error) {
	// 1) Resolve options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if len(motion) == 0 {
		return nil, ErrEmptySeries
	}
	if cfg.Window < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadWindow, cfg.Window)
	}
	for i, v := range motion {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: index %d", ErrBadMotion, i)
		}
	}

	// 3) Start all-true, then censor around each violation.
	n := len(motion)
	mask := make(Mask, n)
	for i := range mask {
		mask[i] = true
	}
	for v, m := range motion {
		if m <= cfg.Threshold {
			continue
		}
		lo := v - 1
		if lo < 0 {
			lo = 0
		}
		hi := v + cfg.Window
		if hi > n-1 {
			hi = n - 1
		}
		for t := lo; t <= hi; t++ {
			mask[t] = false
		}
	}

	return mask, nil
}

// Report returns retained/removed counts for the mask.
func (m Mask) Report() Report {
	r := Report{Total: len(m)}
	for _, keep := range m {
		if keep {
			r.Retained++
		}
	}
	r.Removed = r.Total - r.Retained

	return r
}

// Retained returns the number of true entries.
func (m Mask) Retained() int { return m.Report().Retained }

// Require returns ErrInsufficientData when fewer than min timepoints are
// retained. The wrapped message carries the counts for diagnosis.
func (m Mask) Require(min int) error {
	r := m.Report()
	if r.Retained < min {
		return fmt.Errorf("%w: retained %d of %d, floor %d", ErrInsufficientData, r.Retained, r.Total, min)
	}

	return nil
}

// Apply selects the rows of a matrix where the mask is true, preserving
// relative order. The result owns copies of the selected rows.
// Errors: ErrShapeMismatch when len(rows) != len(m).
func (m Mask) Apply(rows [][]float64) ([][]float64, error) {
	if len(rows) != len(m) {
		return nil, fmt.Errorf("%w: %d rows for mask of length %d", ErrShapeMismatch, len(rows), len(m))
	}
	out := make([][]float64, 0, m.Retained())
	for t, keep := range m {
		if keep {
			out = append(out, append([]float64(nil), rows[t]...))
		}
	}

	return out, nil
}

// ApplySeries selects the entries of a time series where the mask is true.
func (m Mask) ApplySeries(xs []float64) ([]float64, error) {
	if len(xs) != len(m) {
		return nil, fmt.Errorf("%w: %d values for mask of length %d", ErrShapeMismatch, len(xs), len(m))
	}
	out := make([]float64, 0, m.Retained())
	for t, keep := range m {
		if keep {
			out = append(out, xs[t])
		}
	}

	return out, nil
}

// ApplySignal selects the retained timepoints of a SignalMatrix, returning
// a new matrix with the same unit axis.
func (m Mask) ApplySignal(sig *signal.SignalMatrix) (*signal.SignalMatrix, error) {
	if sig.Timepoints() != len(m) {
		return nil, fmt.Errorf("%w: %d timepoints for mask of length %d",
			ErrShapeMismatch, sig.Timepoints(), len(m))
	}
	rows, err := m.Apply(sig.Rows())
	if err != nil {
		return nil, err
	}

	return signal.NewSignalMatrix(rows)
}
