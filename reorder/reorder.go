package reorder

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyLabels is returned when ByLabel receives no labels.
	ErrEmptyLabels = errors.New("reorder: empty label set")
	// ErrShapeMismatch is returned when a matrix does not match the
	// ordering's dimension or is not square.
	ErrShapeMismatch = errors.New("reorder: shape mismatch")
)

// Ordering is a grouped layout for an n-region matrix.
//
// Perm       — Perm[i] is the original index of the region shown at row i.
// Boundaries — start rows of each label group after the first; never 0 or
//              n, so a renderer can draw a separator above each entry.
// Groups     — distinct labels in display order, parallel to the groups
//              Boundaries delimit.
type Ordering struct {
	Perm       []int
	Boundaries []int
	Groups     []string
}

// ByLabel builds the ordering that groups regions by label. Labels are
// sorted lexicographically; the sort is stable, so regions keep their
// original relative order inside each group.
func ByLabel(labels []string) (*Ordering, error) {
	n := len(labels)
	if n == 0 {
		return nil, ErrEmptyLabels
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return labels[perm[a]] < labels[perm[b]]
	})

	ord := &Ordering{Perm: perm}
	for i, idx := range perm {
		label := labels[idx]
		if i == 0 || label != labels[perm[i-1]] {
			ord.Groups = append(ord.Groups, label)
			if i > 0 {
				ord.Boundaries = append(ord.Boundaries, i)
			}
		}
	}

	return ord, nil
}

// Apply returns m with rows and columns permuted into display order:
// out[i][j] = m[Perm[i]][Perm[j]]. The input must be square with the
// ordering's dimension; it is not modified.
func (o *Ordering) Apply(m [][]float64) ([][]float64, error) {
	n := len(o.Perm)
	if len(m) != n {
		return nil, fmt.Errorf("%w: %d rows for %d labels", ErrShapeMismatch, len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), n)
		}
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = m[o.Perm[i]][o.Perm[j]]
		}
	}

	return out, nil
}

// Inverse returns the ordering that maps display order back to the
// original region order. Boundaries and Groups are not meaningful on the
// inverse and are left empty.
func (o *Ordering) Inverse() *Ordering {
	inv := make([]int, len(o.Perm))
	for disp, orig := range o.Perm {
		inv[orig] = disp
	}

	return &Ordering{Perm: inv}
}
