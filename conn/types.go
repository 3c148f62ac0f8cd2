// Package conn: sentinel errors, options and the shared Result type.
package conn

import "errors"

// Sentinel errors for correlation estimation.
var (
	// ErrNilInput indicates a nil region table.
	ErrNilInput = errors.New("conn: nil region table")

	// ErrInsufficientObservations indicates too few timepoints for the
	// requested estimator (full correlation needs T ≥ 3; partial correlation
	// needs T > R retained regions).
	ErrInsufficientObservations = errors.New("conn: insufficient observations")

	// ErrInsufficientRegions indicates fewer than two non-degenerate regions
	// remain after exclusion.
	ErrInsufficientRegions = errors.New("conn: fewer than two usable regions")

	// ErrBadRegularization indicates a non-positive graphical-lasso penalty.
	ErrBadRegularization = errors.New("conn: regularization must be positive")

	// ErrEstimateFailed indicates the sparse inverse covariance estimate
	// broke down numerically (non-positive partial variance).
	ErrEstimateFailed = errors.New("conn: sparse inverse covariance estimation failed")
)

// minObservations is the floor on timepoints for full correlation.
const minObservations = 3

// varianceEps is the absolute sample-variance floor below which a region
// column counts as degenerate (zero variance up to floating-point noise).
const varianceEps = 1e-12

// Result carries an estimated connectivity matrix together with the
// bookkeeping needed to keep indices aligned downstream.
type Result struct {
	// IDs lists the retained region ids; Matrix row/column k corresponds
	// to IDs[k].
	IDs []int

	// Matrix is the symmetric correlation matrix over retained regions,
	// diagonal forced to 0.
	Matrix [][]float64

	// Excluded lists the region ids removed as degenerate (zero variance or
	// flagged by aggregation), in ascending order.
	Excluded []int

	// Coerced counts NaN entries coerced to 0 after estimation.
	Coerced int
}

// Options configures partial-correlation estimation.
//
// Regularization — L1 penalty ρ of the graphical lasso (> 0).
// MaxSweeps      — cap on outer block-coordinate-descent sweeps.
// Tolerance      — mean-absolute-change threshold declaring convergence.
type Options struct {
	Regularization float64
	MaxSweeps      int
	Tolerance      float64
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns ρ = 0.1, MaxSweeps = 100, Tolerance = 1e-4.
func DefaultOptions() Options {
	return Options{Regularization: 0.1, MaxSweeps: 100, Tolerance: 1e-4}
}

// WithRegularization overrides the graphical-lasso penalty ρ.
func WithRegularization(rho float64) Option {
	return func(o *Options) { o.Regularization = rho }
}

// WithMaxSweeps caps the outer coordinate-descent sweeps.
func WithMaxSweeps(n int) Option {
	return func(o *Options) { o.MaxSweeps = n }
}

// WithTolerance overrides the convergence threshold.
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.Tolerance = tol }
}
