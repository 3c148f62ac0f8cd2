// Package parcel collapses per-unit (vertex) signal into per-region
// (parcel) signal given a region label per unit.
//
// Labels assigns every unit exactly one non-negative region id; id 0 is
// reserved for background/unassigned units and is excluded from every
// output. Region ids need not be contiguous — Aggregate produces one
// output column per distinct nonzero id, in ascending id order.
//
// The result is a Table: region ids, a T×R matrix of per-timepoint means,
// and the list of degenerate region ids. A region is degenerate when it has
// zero assigned units (possible when WithUniverse forces ids the labels
// never mention) or when its mean series is constant across at least two
// timepoints — either way it is flagged, never silently correlated
// downstream. Table.Filter applies a retain mask over
// timepoints; Table.Drop removes regions while keeping ids and columns
// aligned, which is how exclusion decisions stay consistent with any
// region-metadata table the caller carries.
package parcel
