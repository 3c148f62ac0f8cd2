package parcel

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/connectome/signal"
)

// Sentinel errors for aggregation.
var (
	// ErrNilInput indicates a nil signal matrix.
	ErrNilInput = errors.New("parcel: nil signal matrix")

	// ErrBadLabel indicates a negative region id.
	ErrBadLabel = errors.New("parcel: region id must be non-negative")

	// ErrNoRegions indicates that no nonzero region id exists in the labels
	// (and no universe was forced): there is nothing to aggregate.
	ErrNoRegions = errors.New("parcel: no regions to aggregate")

	// ErrUnknownRegion indicates a Drop or Index call referencing a region
	// id absent from the table.
	ErrUnknownRegion = errors.New("parcel: unknown region id")
)

// varianceEps is the sample-variance floor below which a region's mean
// series counts as constant.
const varianceEps = 1e-12

// Labels maps unit index → region id. Id 0 means background/unassigned.
type Labels []int

// Regions returns the sorted distinct nonzero region ids present.
func (l Labels) Regions() []int {
	seen := make(map[int]struct{})
	for _, id := range l {
		if id > 0 {
			seen[id] = struct{}{}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// Table is the per-region aggregate of a signal matrix: one column per
// region id, ascending, each column the arithmetic mean over that region's
// units at every timepoint.
type Table struct {
	// IDs lists the region ids in column order (ascending).
	IDs []int

	// Data holds T rows of R per-region means, aligned with IDs.
	Data [][]float64

	// Degenerate lists region ids that cannot carry connectivity: no unit
	// carries the id (all-zero column), or the mean series is constant
	// (zero variance, given at least two timepoints). Flagged here,
	// excluded from correlation downstream.
	Degenerate []int
}

// Options configures aggregation.
//
// Universe — when non-nil, forces the output region id set (ascending,
// deduplicated); labels outside the universe are ignored and universe ids
// without units become degenerate all-zero columns.
type Options struct {
	Universe []int
}

// Option mutates Options before aggregation.
type Option func(*Options)

// WithUniverse forces the output region universe.
func WithUniverse(ids ...int) Option {
	return func(o *Options) { o.Universe = ids }
}

// Aggregate produces the per-region Table for a T×U signal matrix and a
// per-unit label assignment.
//
// Validation (in order):
//  1. Non-nil signal (ErrNilInput).
//  2. len(labels) == sig.Units() (signal.ErrShapeMismatch).
//  3. All labels ≥ 0 (ErrBadLabel); universe ids must be > 0 (ErrBadLabel).
//  4. At least one output region (ErrNoRegions).
//
// Complexity: O(T·U + R).
func Aggregate(sig *signal.SignalMatrix, labels Labels, opts ...Option) (*Table, error) {
	// 1) Resolve options.
	cfg := Options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if sig == nil {
		return nil, ErrNilInput
	}
	if len(labels) != sig.Units() {
		return nil, fmt.Errorf("%w: %d labels for %d units", signal.ErrShapeMismatch, len(labels), sig.Units())
	}
	for u, id := range labels {
		if id < 0 {
			return nil, fmt.Errorf("%w: unit %d has id %d", ErrBadLabel, u, id)
		}
	}

	// 3) Resolve the output region universe.
	var ids []int
	if cfg.Universe != nil {
		seen := make(map[int]struct{}, len(cfg.Universe))
		for _, id := range cfg.Universe {
			if id <= 0 {
				return nil, fmt.Errorf("%w: universe id %d", ErrBadLabel, id)
			}
			seen[id] = struct{}{}
		}
		ids = make([]int, 0, len(seen))
		for id := range seen {
			ids = append(ids, id)
		}
		sort.Ints(ids)
	} else {
		ids = labels.Regions()
	}
	if len(ids) == 0 {
		return nil, ErrNoRegions
	}

	// 4) Map region id → column, count units per region.
	col := make(map[int]int, len(ids))
	for j, id := range ids {
		col[id] = j
	}
	counts := make([]int, len(ids))
	for _, id := range labels {
		if j, ok := col[id]; ok {
			counts[j]++
		}
	}

	// 5) Accumulate sums, then divide by counts. Zero-count columns stay
	//    all-zero.
	T := sig.Timepoints()
	data := make([][]float64, T)
	for t := 0; t < T; t++ {
		row := make([]float64, len(ids))
		for u, id := range labels {
			if j, ok := col[id]; ok {
				row[j] += sig.At(t, u)
			}
		}
		for j, n := range counts {
			if n > 0 {
				row[j] /= float64(n)
			}
		}
		data[t] = row
	}

	// 6) Flag degenerate columns: regions with no units stay all-zero;
	//    regions whose mean series is constant carry no signal either.
	//    With a single row every column is trivially constant, so the
	//    variance screen needs at least two.
	var degenerate []int
	for j, n := range counts {
		if n == 0 {
			degenerate = append(degenerate, ids[j])
			continue
		}
		if T >= 2 && columnVariance(data, j) < varianceEps {
			degenerate = append(degenerate, ids[j])
		}
	}

	return &Table{IDs: ids, Data: data, Degenerate: degenerate}, nil
}

// columnVariance returns the sample variance of column j.
func columnVariance(data [][]float64, j int) float64 {
	T := float64(len(data))
	mean := 0.0
	for _, row := range data {
		mean += row[j]
	}
	mean /= T
	ss := 0.0
	for _, row := range data {
		d := row[j] - mean
		ss += d * d
	}

	return ss / (T - 1)
}

// Timepoints returns the number of rows in the table.
func (t *Table) Timepoints() int { return len(t.Data) }

// RegionCount returns the number of region columns.
func (t *Table) RegionCount() int { return len(t.IDs) }

// Index returns the column index of a region id, or ErrUnknownRegion.
func (t *Table) Index(id int) (int, error) {
	for j, got := range t.IDs {
		if got == id {
			return j, nil
		}
	}

	return 0, fmt.Errorf("%w: %d", ErrUnknownRegion, id)
}

// Column returns a copy of the time series of one region id.
func (t *Table) Column(id int) ([]float64, error) {
	j, err := t.Index(id)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Data))
	for k, row := range t.Data {
		out[k] = row[j]
	}

	return out, nil
}

// Filter applies a per-timepoint retain mask (true = keep), returning a
// new Table with the selected rows in original order. Region metadata is
// unchanged. Errors: signal.ErrShapeMismatch on length mismatch.
func (t *Table) Filter(keep []bool) (*Table, error) {
	if len(keep) != len(t.Data) {
		return nil, fmt.Errorf("%w: %d flags for %d rows", signal.ErrShapeMismatch, len(keep), len(t.Data))
	}
	out := &Table{
		IDs:        append([]int(nil), t.IDs...),
		Degenerate: append([]int(nil), t.Degenerate...),
	}
	for k, ok := range keep {
		if ok {
			out.Data = append(out.Data, append([]float64(nil), t.Data[k]...))
		}
	}

	return out, nil
}

// Drop returns a new Table without the given region ids, keeping the
// remaining ids, columns and degenerate flags aligned. Unknown ids are an
// error: silently ignoring them would desynchronize caller-side metadata.
func (t *Table) Drop(ids ...int) (*Table, error) {
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, err := t.Index(id); err != nil {
			return nil, err
		}
		drop[id] = struct{}{}
	}

	var keepCols []int
	out := &Table{}
	for j, id := range t.IDs {
		if _, gone := drop[id]; gone {
			continue
		}
		keepCols = append(keepCols, j)
		out.IDs = append(out.IDs, id)
	}
	for _, id := range t.Degenerate {
		if _, gone := drop[id]; !gone {
			out.Degenerate = append(out.Degenerate, id)
		}
	}
	out.Data = make([][]float64, len(t.Data))
	for k, row := range t.Data {
		nr := make([]float64, len(keepCols))
		for jj, j := range keepCols {
			nr[jj] = row[j]
		}
		out.Data[k] = nr
	}

	return out, nil
}

// Columns returns the per-region series as R slices of length T.
func (t *Table) Columns() [][]float64 {
	out := make([][]float64, len(t.IDs))
	for j := range t.IDs {
		s := make([]float64, len(t.Data))
		for k, row := range t.Data {
			s[k] = row[j]
		}
		out[j] = s
	}

	return out
}
