package signal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SignalMatrix is a T×U real-valued activity matrix: T ordered timepoints by
// U ordered units (vertices or regions). The shape is fixed for the lifetime
// of the value and all entries are finite.
//
// Storage is a row-major flat buffer; Clone and the accessors copy, so a
// SignalMatrix can be shared across pipeline stages without aliasing.
type SignalMatrix struct {
	t, u int
	data []float64 // row-major, len == t*u
}

// NewSignalMatrix builds a SignalMatrix from row slices.
//
// Validation (in order):
//  1. At least one row and one column (ErrEmptyMatrix).
//  2. All rows the same length (ErrRagged).
//  3. All entries finite (ErrNaNInf) — resolve holes before the pipeline,
//     or use NewSignalMatrixZeroFill.
//
// Complexity: O(T·U) time and space.
func NewSignalMatrix(rows [][]float64) (*SignalMatrix, error) {
	m, err := newFromRows(rows)
	if err != nil {
		return nil, err
	}
	for i, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: element %d", ErrNaNInf, i)
		}
	}

	return m, nil
}

// NewSignalMatrixZeroFill builds a SignalMatrix from row slices, replacing
// every NaN or ±Inf entry with 0. The second return value reports how many
// entries were zero-filled, so callers can surface the coercion instead of
// hiding it.
func NewSignalMatrixZeroFill(rows [][]float64) (*SignalMatrix, int, error) {
	m, err := newFromRows(rows)
	if err != nil {
		return nil, 0, err
	}
	filled := 0
	for i, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			m.data[i] = 0
			filled++
		}
	}

	return m, filled, nil
}

// newFromRows validates shape and copies rows into a flat buffer.
func newFromRows(rows [][]float64) (*SignalMatrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMatrix
	}
	u := len(rows[0])
	for i, r := range rows {
		if len(r) != u {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRagged, i, len(r), u)
		}
	}
	m := &SignalMatrix{t: len(rows), u: u, data: make([]float64, len(rows)*u)}
	for i, r := range rows {
		copy(m.data[i*u:(i+1)*u], r)
	}

	return m, nil
}

// FromDense copies a gonum matrix into a SignalMatrix. Used by the numeric
// stages (regression) to re-enter the typed pipeline after linear algebra.
func FromDense(d mat.Matrix) *SignalMatrix {
	t, u := d.Dims()
	m := &SignalMatrix{t: t, u: u, data: make([]float64, t*u)}
	for i := 0; i < t; i++ {
		for j := 0; j < u; j++ {
			m.data[i*u+j] = d.At(i, j)
		}
	}

	return m
}

// Timepoints returns T, the number of rows.
func (m *SignalMatrix) Timepoints() int { return m.t }

// Units returns U, the number of columns.
func (m *SignalMatrix) Units() int { return m.u }

// At returns the value at timepoint t, unit u.
// Panics if either index is out of range.
func (m *SignalMatrix) At(t, u int) float64 {
	if t < 0 || t >= m.t || u < 0 || u >= m.u {
		panic(fmt.Sprintf("signal: At(%d, %d) out of range %d×%d", t, u, m.t, m.u))
	}

	return m.data[t*m.u+u]
}

// Row returns a copy of the values at timepoint t.
// Panics if t is out of range.
func (m *SignalMatrix) Row(t int) []float64 {
	if t < 0 || t >= m.t {
		panic(fmt.Sprintf("signal: Row(%d) out of range %d", t, m.t))
	}
	out := make([]float64, m.u)
	copy(out, m.data[t*m.u:(t+1)*m.u])

	return out
}

// Column returns a copy of the time series of unit u.
// Panics if u is out of range.
func (m *SignalMatrix) Column(u int) []float64 {
	if u < 0 || u >= m.u {
		panic(fmt.Sprintf("signal: Column(%d) out of range %d", u, m.u))
	}
	out := make([]float64, m.t)
	for t := 0; t < m.t; t++ {
		out[t] = m.data[t*m.u+u]
	}

	return out
}

// Rows returns a fresh [][]float64 copy of the whole matrix.
func (m *SignalMatrix) Rows() [][]float64 {
	out := make([][]float64, m.t)
	for t := 0; t < m.t; t++ {
		out[t] = m.Row(t)
	}

	return out
}

// Dense returns a gonum mat.Dense copy of the matrix for linear algebra.
func (m *SignalMatrix) Dense() *mat.Dense {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return mat.NewDense(m.t, m.u, buf)
}

// Clone returns a deep copy, independent of the receiver.
func (m *SignalMatrix) Clone() *SignalMatrix {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &SignalMatrix{t: m.t, u: m.u, data: buf}
}

// GlobalSignal returns the cross-unit mean series of the matrix: one value
// per timepoint, the arithmetic mean over all units at that timepoint.
// This is the extra nuisance column of the SetGlobalSignal variant.
func GlobalSignal(m *SignalMatrix) []float64 {
	out := make([]float64, m.t)
	inv := 1.0 / float64(m.u)
	for t := 0; t < m.t; t++ {
		s := 0.0
		base := t * m.u
		for j := 0; j < m.u; j++ {
			s += m.data[base+j]
		}
		out[t] = s * inv
	}

	return out
}

// AlignRows verifies that a signal matrix and a confound matrix cover the
// same time axis. Returns ErrShapeMismatch (with both counts) otherwise.
func AlignRows(sig *SignalMatrix, conf *ConfoundMatrix) error {
	if sig.Timepoints() != conf.Timepoints() {
		return fmt.Errorf("%w: signal has %d timepoints, confounds have %d",
			ErrShapeMismatch, sig.Timepoints(), conf.Timepoints())
	}

	return nil
}
