// Package adjacency turns a correlation matrix into a fixed-density binary
// graph.
//
// Threshold computes the cutoff as the (100·(1−d))-th percentile of the
// upper-triangular entries (diagonal excluded) and keeps an edge wherever
// the correlation is STRICTLY greater than the cutoff. Ties at the cutoff
// are dropped, so the realized density never overshoots the request — the
// nearest achievable density at or below it. The tie count and the realized
// density are reported on the result rather than raised as an error: the
// condition is recoverable and expected for discrete (R, d) combinations.
//
// Binary.Graph materializes the adjacency as an unweighted core.Graph whose
// node set covers every region index, isolated nodes included.
// WeightedGraph bypasses thresholding entirely and loads the raw signed
// correlations as edge weights, preserving anti-correlation structure for
// the signed community detector.
package adjacency
