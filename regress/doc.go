// Package regress removes nuisance variance from a SignalMatrix by ordinary
// least squares against a ConfoundMatrix.
//
// Residualize computes R = S − X·β where β is the least-squares solution of
// X·β ≈ S (QR factorization, no implicit intercept: if a baseline or
// slow-drift term is wanted, it must already be a confound column, e.g. a
// cosine basis).
//
// Each confound-set variant (standard, global-signal) must be regressed
// against the SAME original signal. Chaining — regressing a residual against
// a second confound set — reintroduces artifact and is forbidden by the
// design; the API takes the raw signal every time and never mutates it.
//
// Degeneracy policy: the confound count must be strictly smaller than the
// timepoint count and the confound matrix must have full column rank.
// Violations return ErrDegenerateRegression; the package never returns
// Inf/NaN residuals silently.
//
// Property held by the output (see tests): Xᵀ·R ≈ 0, the residual is
// orthogonal to every regressor within floating-point tolerance.
package regress
