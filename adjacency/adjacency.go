package adjacency

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/katalvlaran/connectome/core"
)

// Sentinel errors for adjacency construction.
var (
	// ErrEmptyMatrix indicates a matrix with no rows.
	ErrEmptyMatrix = errors.New("adjacency: empty matrix")

	// ErrNonSquare indicates a non-square input matrix.
	ErrNonSquare = errors.New("adjacency: matrix is not square")

	// ErrAsymmetry indicates an input that violates symmetry beyond the
	// numeric epsilon.
	ErrAsymmetry = errors.New("adjacency: matrix is not symmetric within eps")

	// ErrBadDensity indicates a requested edge density outside (0, 1].
	ErrBadDensity = errors.New("adjacency: density must be in (0, 1]")

	// ErrNonFinite indicates a NaN or Inf entry in the input matrix.
	ErrNonFinite = errors.New("adjacency: matrix contains NaN or Inf")
)

// symmetryEps bounds the tolerated |m[i][j] − m[j][i]| for valid input.
const symmetryEps = 1e-9

// Binary is a thresholded 0/1 adjacency matrix plus the metadata of how it
// was obtained.
type Binary struct {
	// Data is the symmetric 0/1 matrix with zero diagonal.
	Data [][]float64

	// Cutoff is the percentile value edges had to strictly exceed.
	Cutoff float64

	// RequestedDensity is the density d passed to Threshold.
	RequestedDensity float64

	// RealizedDensity is the achieved fraction of off-diagonal entries set
	// to 1; never greater than RequestedDensity.
	RealizedDensity float64

	// TiesDropped counts upper-triangular entries equal to the cutoff that
	// the strict-inequality policy excluded. Nonzero means the request was
	// not exactly achievable.
	TiesDropped int
}

// Threshold derives a fixed-density binary adjacency matrix from a
// correlation matrix.
//
// Stages:
//  1. Validate: non-empty square symmetric matrix, d ∈ (0, 1].
//  2. Cutoff = the (100·(1−d))-th percentile of the upper-triangular
//     entries (montanaflynn/stats); d = 1 degenerates to −Inf so every
//     off-diagonal entry qualifies.
//  3. A[i][j] = 1 iff corr[i][j] > cutoff, symmetric, zero diagonal; ties
//     at the cutoff are counted and dropped.
//
// Complexity: O(R² log R) dominated by the percentile sort.
func Threshold(corr [][]float64, density float64) (*Binary, error) {
	// 1) Validate.
	if err := validateSquareSymmetric(corr); err != nil {
		return nil, err
	}
	if density <= 0 || density > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrBadDensity, density)
	}

	n := len(corr)
	upper := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			upper = append(upper, corr[i][j])
		}
	}

	// 2) Percentile cutoff, nearest-rank method: the cutoff is an actual
	// entry at ordinal rank ceil((1−d)·N), which together with the strict
	// inequality below guarantees the realized density never exceeds the
	// request. percent = 0 (d = 1) means "keep everything" and maps to a
	// −Inf cutoff directly.
	percent := 100 * (1 - density)
	cutoff := math.Inf(-1)
	if percent > 0 && len(upper) > 0 {
		c, err := stats.PercentileNearestRank(upper, percent)
		if err != nil {
			return nil, fmt.Errorf("adjacency: percentile: %w", err)
		}
		cutoff = c
	}

	// 3) Build the 0/1 matrix under the strict-inequality policy.
	b := &Binary{
		Data:             make([][]float64, n),
		Cutoff:           cutoff,
		RequestedDensity: density,
	}
	for i := range b.Data {
		b.Data[i] = make([]float64, n)
	}
	ones := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case corr[i][j] > cutoff:
				b.Data[i][j] = 1
				b.Data[j][i] = 1
				ones++
			case corr[i][j] == cutoff:
				b.TiesDropped++
			}
		}
	}
	if len(upper) > 0 {
		b.RealizedDensity = float64(ones) / float64(len(upper))
	}

	return b, nil
}

// Size returns the node count of the adjacency matrix.
func (b *Binary) Size() int { return len(b.Data) }

// Graph materializes the adjacency as an unweighted core.Graph. Every
// region index becomes a node; isolated nodes are preserved.
func (b *Binary) Graph() (*core.Graph, error) {
	g, err := core.NewGraph(b.Size())
	if err != nil {
		return nil, err
	}
	for i := range b.Data {
		for j := i + 1; j < len(b.Data); j++ {
			if b.Data[i][j] != 0 {
				if err := g.AddEdge(i, j, 1); err != nil {
					return nil, err
				}
			}
		}
	}

	return g, nil
}

// WeightedGraph loads a raw signed correlation matrix as an undirected
// weighted core.Graph, skipping exact-zero entries. No thresholding is
// applied: this is the input for signed community detection, which must
// see anti-correlations that a binary cut would discard.
func WeightedGraph(corr [][]float64) (*core.Graph, error) {
	if err := validateSquareSymmetric(corr); err != nil {
		return nil, err
	}
	g, err := core.NewGraph(len(corr), core.WithWeighted())
	if err != nil {
		return nil, err
	}
	for i := range corr {
		for j := i + 1; j < len(corr); j++ {
			if corr[i][j] != 0 {
				if err := g.AddEdge(i, j, corr[i][j]); err != nil {
					return nil, err
				}
			}
		}
	}

	return g, nil
}

// validateSquareSymmetric rejects empty, non-square, non-finite and
// asymmetric input. A NaN would slip through both the symmetry check and
// the cutoff comparisons, so it is refused here instead of vanishing from
// the edge counts.
func validateSquareSymmetric(m [][]float64) error {
	if len(m) == 0 {
		return ErrEmptyMatrix
	}
	n := len(m)
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns for %d rows", ErrNonSquare, i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: (%d,%d)=%g", ErrNonFinite, i, j, v)
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m[i][j]-m[j][i]) > symmetryEps {
				return fmt.Errorf("%w: (%d,%d)=%g vs (%d,%d)=%g", ErrAsymmetry, i, j, m[i][j], j, i, m[j][i])
			}
		}
	}

	return nil
}
