// Package reorder computes display orderings for connectivity matrices.
//
// Region-level matrices are easier to read when rows and columns are
// grouped by network membership. ByLabel turns a per-region label slice
// into a permutation that sorts regions by label (stable, so the original
// region order survives within each group), plus the group boundaries a
// renderer needs for separator lines. Ordering.Apply permutes a square
// matrix symmetrically; Inverse undoes it.
package reorder
