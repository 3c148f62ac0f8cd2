package signal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// derivativeSuffix is appended to a source column name to form the name of
// its first-order backward-difference column.
const derivativeSuffix = "_dt"

// ConfoundMatrix is a T×C matrix of named nuisance regressors, aligned
// one-to-one in time with a SignalMatrix. Column names are unique; columns
// are stored column-major so projections are cheap copies.
//
// A ConfoundMatrix is immutable: Select, WithColumn, WithDerivatives and
// ForSet all return a new value and never reorder rows.
type ConfoundMatrix struct {
	t     int
	names []string
	cols  [][]float64 // cols[i] has length t, parallel to names
	index map[string]int
}

// NewConfoundMatrix builds a ConfoundMatrix from parallel name and column
// slices.
//
// Validation (in order):
//  1. At least one column and one row (ErrEmptyMatrix).
//  2. len(names) == len(cols) (ErrShapeMismatch).
//  3. Unique names (ErrDuplicateConfound).
//  4. Equal column lengths (ErrRagged).
//  5. Finite entries (ErrNaNInf).
func NewConfoundMatrix(names []string, cols [][]float64) (*ConfoundMatrix, error) {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, ErrEmptyMatrix
	}
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrShapeMismatch, len(names), len(cols))
	}
	t := len(cols[0])
	m := &ConfoundMatrix{
		t:     t,
		names: make([]string, len(names)),
		cols:  make([][]float64, len(cols)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, dup := m.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateConfound, name)
		}
		if len(cols[i]) != t {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrRagged, name, len(cols[i]), t)
		}
		for k, v := range cols[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: column %q row %d", ErrNaNInf, name, k)
			}
		}
		m.names[i] = name
		m.index[name] = i
		m.cols[i] = append([]float64(nil), cols[i]...)
	}

	return m, nil
}

// Timepoints returns T, the number of rows.
func (m *ConfoundMatrix) Timepoints() int { return m.t }

// Count returns C, the number of confound columns.
func (m *ConfoundMatrix) Count() int { return len(m.cols) }

// Names returns a copy of the column names in storage order.
func (m *ConfoundMatrix) Names() []string {
	return append([]string(nil), m.names...)
}

// Has reports whether a column with the given name exists.
func (m *ConfoundMatrix) Has(name string) bool {
	_, ok := m.index[name]

	return ok
}

// Column returns a copy of the named column, or ErrUnknownConfound.
func (m *ConfoundMatrix) Column(name string) ([]float64, error) {
	i, ok := m.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConfound, name)
	}

	return append([]float64(nil), m.cols[i]...), nil
}

// Select returns a new ConfoundMatrix holding only the named columns, in
// the order given. A pure projection: rows are never reordered. Unknown
// names yield ErrUnknownConfound; repeating a name yields ErrDuplicateConfound.
func (m *ConfoundMatrix) Select(names ...string) (*ConfoundMatrix, error) {
	if len(names) == 0 {
		return nil, ErrEmptyMatrix
	}
	cols := make([][]float64, len(names))
	for i, name := range names {
		j, ok := m.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownConfound, name)
		}
		cols[i] = m.cols[j]
	}

	return NewConfoundMatrix(names, cols)
}

// WithColumn returns a new ConfoundMatrix with one column appended.
// The column must match the time axis (ErrShapeMismatch) and the name must
// be fresh (ErrDuplicateConfound).
func (m *ConfoundMatrix) WithColumn(name string, col []float64) (*ConfoundMatrix, error) {
	if len(col) != m.t {
		return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrShapeMismatch, name, len(col), m.t)
	}
	names := append(m.Names(), name)
	cols := append(append([][]float64(nil), m.cols...), col)

	return NewConfoundMatrix(names, cols)
}

// WithDerivatives returns a new ConfoundMatrix with a backward-difference
// column appended for each named source: x_dt[k] = x[k] − x[k−1], x_dt[0] = 0.
// Derivatives are computed from the current source columns; re-deriving
// after a Select therefore reflects the projected data.
func (m *ConfoundMatrix) WithDerivatives(names ...string) (*ConfoundMatrix, error) {
	out := m
	var err error
	for _, name := range names {
		j, ok := m.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownConfound, name)
		}
		src := m.cols[j]
		d := make([]float64, m.t)
		for k := 1; k < m.t; k++ {
			d[k] = src[k] - src[k-1]
		}
		// d[0] stays 0: the first timepoint has no predecessor.
		out, err = out.WithColumn(name+derivativeSuffix, d)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ForSet materializes the confound matrix for one of the closed nuisance
// models. SetStandard returns the receiver unchanged; SetGlobalSignal
// appends the cross-unit mean of sig under GlobalSignalColumn. Any other
// value is rejected with ErrUnknownConfoundSet.
func (m *ConfoundMatrix) ForSet(set ConfoundSet, sig *SignalMatrix) (*ConfoundMatrix, error) {
	switch set {
	case SetStandard:
		return m, nil
	case SetGlobalSignal:
		if err := AlignRows(sig, m); err != nil {
			return nil, err
		}

		return m.WithColumn(GlobalSignalColumn, GlobalSignal(sig))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownConfoundSet, int(set))
	}
}

// Dense returns a T×C gonum mat.Dense copy in storage column order.
func (m *ConfoundMatrix) Dense() *mat.Dense {
	d := mat.NewDense(m.t, len(m.cols), nil)
	for j, col := range m.cols {
		for t := 0; t < m.t; t++ {
			d.Set(t, j, col[t])
		}
	}

	return d
}
