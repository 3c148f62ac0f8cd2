package conn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/connectome/parcel"
)

// innerSweeps caps the coordinate-descent iterations of the L1-penalized
// column solve inside each outer sweep.
const innerSweeps = 200

// PartialCorrelation estimates direct (conditional on all other regions)
// association via the graphical lasso.
//
// Stages:
//  1. Validate the table, exclude degenerate regions exactly as
//     FullCorrelation does, and require T > K retained regions.
//  2. Z-score the retained columns; their sample covariance equals the
//     correlation matrix, which keeps the penalty scale-free.
//  3. Graphical lasso: block coordinate descent over columns of the
//     covariance estimate W, each column solved by coordinate-descent
//     lasso with penalty ρ, until the mean absolute update falls below
//     Tolerance or MaxSweeps is hit (the cap guarantees termination).
//  4. Recover the precision matrix Θ and convert to partial correlation
//     p_ij = −Θ_ij/√(Θ_ii·Θ_jj), clamped to [−1, 1], diagonal 0, NaN
//     coerced to 0 and counted.
//
// Errors: ErrNilInput, ErrBadRegularization, ErrInsufficientObservations
// (T ≤ K), ErrInsufficientRegions, ErrEstimateFailed on numerical
// breakdown (non-positive partial variance).
// Complexity: O(sweeps · K³) time, O(K²) space.
func PartialCorrelation(tab *parcel.Table, opts ...Option) (*Result, error) {
	// 1) Resolve options and validate.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if tab == nil {
		return nil, ErrNilInput
	}
	if cfg.Regularization <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadRegularization, cfg.Regularization)
	}

	keep, excluded := screenRegions(tab)
	k := len(keep)
	if k < 2 {
		return nil, fmt.Errorf("%w: %d of %d usable", ErrInsufficientRegions, k, tab.RegionCount())
	}
	T := tab.Timepoints()
	if T <= k {
		return nil, fmt.Errorf("%w: %d timepoints for %d regions (need T > R)", ErrInsufficientObservations, T, k)
	}

	// 2) Covariance of z-scored columns == correlation matrix.
	x := retainedDense(tab, keep)
	zscoreColumns(x)
	sym := mat.NewSymDense(k, nil)
	stat.CovarianceMatrix(sym, x, nil)
	S := symToRows(sym)

	// 3) Graphical lasso.
	theta, err := graphicalLasso(S, cfg)
	if err != nil {
		return nil, err
	}

	// 4) Precision → partial correlation.
	res := &Result{
		IDs:      retainedIDs(tab, keep),
		Excluded: excluded,
		Matrix:   make([][]float64, k),
	}
	for i := 0; i < k; i++ {
		res.Matrix[i] = make([]float64, k)
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			p := -theta[i][j] / math.Sqrt(theta[i][i]*theta[j][j])
			if math.IsNaN(p) {
				res.Coerced++
				p = 0
			}
			p = clamp(p, -1, 1)
			res.Matrix[i][j] = p
			res.Matrix[j][i] = p
		}
	}

	return res, nil
}

// graphicalLasso runs Friedman-style block coordinate descent and returns
// the precision matrix Θ. S must be a symmetric correlation/covariance
// matrix with unit-scale diagonal.
func graphicalLasso(S [][]float64, cfg Options) ([][]float64, error) {
	k := len(S)
	rho := cfg.Regularization

	// W starts at S with the penalty added on the diagonal.
	W := make([][]float64, k)
	for i := range S {
		W[i] = append([]float64(nil), S[i]...)
		W[i][i] += rho
	}
	// B[j] holds the lasso coefficients of column j against the rest.
	B := make([][]float64, k)
	for j := range B {
		B[j] = make([]float64, k)
	}

	for sweep := 0; sweep < cfg.MaxSweeps; sweep++ {
		maxDelta := 0.0
		for j := 0; j < k; j++ {
			beta := B[j]

			// Inner lasso: minimize ½βᵀW₁₁β − βᵀs₁₂ + ρ‖β‖₁ by cyclic
			// coordinate descent over the off-j coordinates.
			for inner := 0; inner < innerSweeps; inner++ {
				innerDelta := 0.0
				for c := 0; c < k; c++ {
					if c == j {
						continue
					}
					r := S[c][j]
					for l := 0; l < k; l++ {
						if l == j || l == c || beta[l] == 0 {
							continue
						}
						r -= W[c][l] * beta[l]
					}
					nb := softThreshold(r, rho) / W[c][c]
					if d := math.Abs(nb - beta[c]); d > innerDelta {
						innerDelta = d
					}
					beta[c] = nb
				}
				if innerDelta < cfg.Tolerance/10 {
					break
				}
			}

			// Update column j of W: w₁₂ = W₁₁·β.
			for c := 0; c < k; c++ {
				if c == j {
					continue
				}
				s := 0.0
				for l := 0; l < k; l++ {
					if l == j || beta[l] == 0 {
						continue
					}
					s += W[c][l] * beta[l]
				}
				if d := math.Abs(W[c][j] - s); d > maxDelta {
					maxDelta = d
				}
				W[c][j] = s
				W[j][c] = s
			}
		}
		if maxDelta < cfg.Tolerance {
			break
		}
	}

	// Recover Θ column by column:
	// θ_jj = 1/(w_jj − w₁₂ᵀβ), θ_·j = −β·θ_jj.
	theta := make([][]float64, k)
	for i := range theta {
		theta[i] = make([]float64, k)
	}
	for j := 0; j < k; j++ {
		beta := B[j]
		dot := 0.0
		for l := 0; l < k; l++ {
			if l != j {
				dot += W[l][j] * beta[l]
			}
		}
		partialVar := W[j][j] - dot
		if partialVar <= 0 || math.IsNaN(partialVar) {
			return nil, fmt.Errorf("%w: non-positive partial variance at column %d", ErrEstimateFailed, j)
		}
		tjj := 1.0 / partialVar
		theta[j][j] = tjj
		for c := 0; c < k; c++ {
			if c != j {
				theta[c][j] = -beta[c] * tjj
			}
		}
	}
	// Symmetrize: the two block solves of a pair (i, j) agree only up to
	// convergence tolerance.
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			m := (theta[i][j] + theta[j][i]) / 2
			theta[i][j] = m
			theta[j][i] = m
		}
	}

	return theta, nil
}

// softThreshold is the lasso shrinkage operator sign(x)·max(|x|−t, 0).
func softThreshold(x, t float64) float64 {
	switch {
	case x > t:
		return x - t
	case x < -t:
		return x + t
	default:
		return 0
	}
}

// zscoreColumns standardizes every column of x in place to mean 0 and unit
// sample variance. Degenerate columns cannot occur here: callers screen
// them out before estimation.
func zscoreColumns(x *mat.Dense) {
	T, k := x.Dims()
	for j := 0; j < k; j++ {
		mean := 0.0
		for t := 0; t < T; t++ {
			mean += x.At(t, j)
		}
		mean /= float64(T)
		ss := 0.0
		for t := 0; t < T; t++ {
			d := x.At(t, j) - mean
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(T-1))
		for t := 0; t < T; t++ {
			x.Set(t, j, (x.At(t, j)-mean)/sd)
		}
	}
}

// symToRows copies a SymDense into row slices.
func symToRows(s *mat.SymDense) [][]float64 {
	n := s.SymmetricDim()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = s.At(i, j)
		}
	}

	return out
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
