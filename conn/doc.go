// Package conn estimates pairwise statistical dependence between region
// time series: full Pearson correlation and partial (direct-connection)
// correlation via a sparse inverse covariance estimator.
//
// Both estimators share the exclusion bookkeeping demanded by degenerate
// data: zero-variance region columns (flagged by parcel, or detected here)
// are removed up front, their ids reported in Result.Excluded, and the
// retained ids listed in Result.IDs so row/column indices stay aligned with
// any region-metadata table the caller keeps. Exclusion is counted and
// reported, never silent.
//
// Conventions on the output matrix:
//
//   - Square over the RETAINED regions only, symmetric.
//   - Diagonal forced to 0 — self-correlation carries no information for
//     graph construction.
//   - Any residual NaN from numerical edge cases is coerced to 0 and counted
//     in Result.Coerced for diagnostics.
//
// PartialCorrelation estimates the precision matrix Θ with the graphical
// lasso (block coordinate descent with an L1-penalized inner solve) on
// z-scored columns and converts it via p_ij = −Θ_ij/√(Θ_ii·Θ_jj). It
// requires strictly more timepoints than retained regions.
package conn
