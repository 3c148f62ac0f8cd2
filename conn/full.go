package conn

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/connectome/parcel"
)

// FullCorrelation computes the Pearson correlation matrix over the
// non-degenerate regions of a parcel table.
//
// Stages:
//  1. Validate the table and the observation floor.
//  2. Exclude degenerate regions (zero variance, or flagged by the
//     aggregator) and record their ids.
//  3. Pearson correlation over the retained T×K column matrix
//     (gonum stat.CorrelationMatrix).
//  4. Force the diagonal to 0 and coerce residual NaN to 0, counting the
//     coercions.
//
// Errors: ErrNilInput, ErrInsufficientObservations (T < 3),
// ErrInsufficientRegions (K < 2 after exclusion).
// Complexity: O(T·K²).
func FullCorrelation(tab *parcel.Table) (*Result, error) {
	// 1) Validate.
	if tab == nil {
		return nil, ErrNilInput
	}
	T := tab.Timepoints()
	if T < minObservations {
		return nil, fmt.Errorf("%w: %d timepoints, need at least %d", ErrInsufficientObservations, T, minObservations)
	}

	// 2) Exclusion bookkeeping shared with the partial estimator.
	keep, excluded := screenRegions(tab)
	if len(keep) < 2 {
		return nil, fmt.Errorf("%w: %d of %d usable", ErrInsufficientRegions, len(keep), tab.RegionCount())
	}

	// 3) Pearson correlation over the retained columns.
	x := retainedDense(tab, keep)
	k := len(keep)
	sym := mat.NewSymDense(k, nil)
	stat.CorrelationMatrix(sym, x, nil)

	// 4) Export with zero diagonal and counted NaN coercion.
	res := &Result{
		IDs:      retainedIDs(tab, keep),
		Excluded: excluded,
		Matrix:   make([][]float64, k),
	}
	for i := 0; i < k; i++ {
		row := make([]float64, k)
		for j := 0; j < k; j++ {
			if i == j {
				continue // diagonal stays 0
			}
			v := sym.At(i, j)
			if math.IsNaN(v) {
				res.Coerced++
				v = 0
			}
			row[j] = v
		}
		res.Matrix[i] = row
	}

	return res, nil
}

// screenRegions returns the column indices to keep and the ascending list
// of excluded region ids. A column is excluded when the aggregator flagged
// its region as degenerate or its sample variance is below varianceEps.
func screenRegions(tab *parcel.Table) (keep []int, excluded []int) {
	flagged := make(map[int]struct{}, len(tab.Degenerate))
	for _, id := range tab.Degenerate {
		flagged[id] = struct{}{}
	}
	T := float64(tab.Timepoints())
	for j, id := range tab.IDs {
		if _, bad := flagged[id]; bad {
			excluded = append(excluded, id)
			continue
		}
		// Sample variance of column j.
		mean := 0.0
		for _, row := range tab.Data {
			mean += row[j]
		}
		mean /= T
		ss := 0.0
		for _, row := range tab.Data {
			d := row[j] - mean
			ss += d * d
		}
		if ss/(T-1) < varianceEps {
			excluded = append(excluded, id)
			continue
		}
		keep = append(keep, j)
	}
	sort.Ints(excluded)

	return keep, excluded
}

// retainedDense copies the kept columns into a T×K dense matrix.
func retainedDense(tab *parcel.Table, keep []int) *mat.Dense {
	T := tab.Timepoints()
	x := mat.NewDense(T, len(keep), nil)
	for t, row := range tab.Data {
		for jj, j := range keep {
			x.Set(t, jj, row[j])
		}
	}

	return x
}

// retainedIDs maps kept column indices back to region ids.
func retainedIDs(tab *parcel.Table, keep []int) []int {
	ids := make([]int, len(keep))
	for jj, j := range keep {
		ids[jj] = tab.IDs[j]
	}

	return ids
}
