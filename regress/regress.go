package regress

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/connectome/signal"
)

// Sentinel errors for the confound-regression stage.
var (
	// ErrNilInput indicates a nil signal or confound matrix.
	ErrNilInput = errors.New("regress: nil input matrix")

	// ErrDegenerateRegression indicates the least-squares problem cannot be
	// solved reliably: confound count ≥ timepoint count, rank-deficient
	// confounds, or a numerically singular system.
	ErrDegenerateRegression = errors.New("regress: degenerate regression")
)

// rankTolerance scales the largest singular value to decide when a smaller
// singular value counts as zero (rank detection).
const rankTolerance = 1e-10

// Residualize removes the variance explained by conf from sig and returns
// the residual as a new SignalMatrix.
//
// Validation (in order):
//  1. Non-nil inputs (ErrNilInput).
//  2. Row alignment (signal.ErrShapeMismatch).
//  3. C < T strictly, else the normal equations are rank-deficient
//     (ErrDegenerateRegression, with shapes for diagnosis).
//  4. Full column rank of X, checked via thin SVD (ErrDegenerateRegression).
//
// Numeric semantics: β solves X·β ≈ S in the least-squares sense via QR
// (mat.Dense.Solve); R = S − X·β. No intercept is added implicitly. The
// inputs are never mutated; the call is a pure function.
//
// Complexity: O(T·C² + T·C·U) time, O(T·U) space for the residual.
func Residualize(sig *signal.SignalMatrix, conf *signal.ConfoundMatrix) (*signal.SignalMatrix, error) {
	// 1) Presence.
	if sig == nil || conf == nil {
		return nil, ErrNilInput
	}

	// 2) Shared time axis.
	if err := signal.AlignRows(sig, conf); err != nil {
		return nil, err
	}

	// 3) Strictly more observations than regressors.
	t, c := sig.Timepoints(), conf.Count()
	if c >= t {
		return nil, fmt.Errorf("%w: %d confounds for %d timepoints (need C < T)",
			ErrDegenerateRegression, c, t)
	}

	X := conf.Dense()
	S := sig.Dense()

	// 4) Rank check via thin SVD: every singular value must clear the
	//    tolerance relative to the largest, otherwise β is not identifiable.
	var svd mat.SVD
	if !svd.Factorize(X, mat.SVDThin) {
		return nil, fmt.Errorf("%w: SVD of %d×%d confound matrix failed",
			ErrDegenerateRegression, t, c)
	}
	values := svd.Values(nil)
	if values[0] == 0 || values[len(values)-1] <= rankTolerance*values[0] {
		return nil, fmt.Errorf("%w: confound matrix is rank-deficient (%d×%d)",
			ErrDegenerateRegression, t, c)
	}

	// 5) β = argmin ‖X·β − S‖₂ via QR least squares.
	var beta mat.Dense
	if err := beta.Solve(X, S); err != nil {
		// A Condition error still carries a valid solution, but a system this
		// ill-conditioned would hand garbage residuals downstream. Fail loudly.
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: confound matrix condition number %g",
				ErrDegenerateRegression, float64(cond))
		}

		return nil, fmt.Errorf("%w: %v", ErrDegenerateRegression, err)
	}

	// 6) R = S − X·β.
	var fit mat.Dense
	fit.Mul(X, &beta)
	var resid mat.Dense
	resid.Sub(S, &fit)

	return signal.FromDense(&resid), nil
}
