// Package signal_test validates construction, NaN policy, projections and
// derivative semantics of the data-model types.
package signal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connectome/signal"
)

func TestNewSignalMatrix_Basic(t *testing.T) {
	m, err := signal.NewSignalMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	require.Equal(t, 2, m.Timepoints())
	require.Equal(t, 3, m.Units())
	require.Equal(t, 5.0, m.At(1, 1))
	require.Equal(t, []float64{4, 5, 6}, m.Row(1))
	require.Equal(t, []float64{3, 6}, m.Column(2))
}

func TestNewSignalMatrix_Empty(t *testing.T) {
	_, err := signal.NewSignalMatrix(nil)
	require.ErrorIs(t, err, signal.ErrEmptyMatrix)

	_, err = signal.NewSignalMatrix([][]float64{{}})
	require.ErrorIs(t, err, signal.ErrEmptyMatrix)
}

func TestNewSignalMatrix_Ragged(t *testing.T) {
	_, err := signal.NewSignalMatrix([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, signal.ErrRagged)
}

func TestNewSignalMatrix_RejectsNaN(t *testing.T) {
	_, err := signal.NewSignalMatrix([][]float64{{1, math.NaN()}})
	require.ErrorIs(t, err, signal.ErrNaNInf)

	_, err = signal.NewSignalMatrix([][]float64{{1, math.Inf(1)}})
	require.ErrorIs(t, err, signal.ErrNaNInf)
}

func TestNewSignalMatrixZeroFill_CountsCoercions(t *testing.T) {
	m, filled, err := signal.NewSignalMatrixZeroFill([][]float64{
		{1, math.NaN()},
		{math.Inf(-1), 4},
	})
	require.NoError(t, err)
	require.Equal(t, 2, filled)
	require.Equal(t, 0.0, m.At(0, 1))
	require.Equal(t, 0.0, m.At(1, 0))
	require.Equal(t, 4.0, m.At(1, 1))
}

func TestSignalMatrix_CloneIsIndependent(t *testing.T) {
	m, err := signal.NewSignalMatrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	c := m.Clone()
	require.Equal(t, m.Rows(), c.Rows())

	// Mutating a copied row must not leak back into the original.
	r := c.Row(0)
	r[0] = 99
	require.Equal(t, 1.0, c.At(0, 0))
}

func TestGlobalSignal_MeanAcrossUnits(t *testing.T) {
	m, err := signal.NewSignalMatrix([][]float64{{1, 3}, {2, 6}, {0, 0}})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 4, 0}, signal.GlobalSignal(m))
}

func TestNewConfoundMatrix_DuplicateName(t *testing.T) {
	_, err := signal.NewConfoundMatrix(
		[]string{"fd", "fd"},
		[][]float64{{1, 2}, {3, 4}},
	)
	require.ErrorIs(t, err, signal.ErrDuplicateConfound)
}

func TestConfoundMatrix_SelectIsPureProjection(t *testing.T) {
	m, err := signal.NewConfoundMatrix(
		[]string{"fd", "wm", "csf"},
		[][]float64{{1, 2}, {3, 4}, {5, 6}},
	)
	require.NoError(t, err)

	p, err := m.Select("csf", "fd")
	require.NoError(t, err)
	require.Equal(t, []string{"csf", "fd"}, p.Names())
	col, err := p.Column("csf")
	require.NoError(t, err)
	require.Equal(t, []float64{5, 6}, col)

	_, err = m.Select("nope")
	require.ErrorIs(t, err, signal.ErrUnknownConfound)
}

func TestConfoundMatrix_WithDerivatives(t *testing.T) {
	m, err := signal.NewConfoundMatrix(
		[]string{"fd"},
		[][]float64{{1, 4, 2, 2}},
	)
	require.NoError(t, err)

	d, err := m.WithDerivatives("fd")
	require.NoError(t, err)
	require.Equal(t, []string{"fd", "fd_dt"}, d.Names())

	col, err := d.Column("fd_dt")
	require.NoError(t, err)
	// Backward difference with the first element pinned to zero.
	require.Equal(t, []float64{0, 3, -2, 0}, col)
}

func TestConfoundMatrix_ForSetGlobalSignal(t *testing.T) {
	sig, err := signal.NewSignalMatrix([][]float64{{1, 3}, {2, 6}})
	require.NoError(t, err)
	m, err := signal.NewConfoundMatrix([]string{"fd"}, [][]float64{{0.1, 0.2}})
	require.NoError(t, err)

	std, err := m.ForSet(signal.SetStandard, sig)
	require.NoError(t, err)
	require.Equal(t, []string{"fd"}, std.Names())

	gsr, err := m.ForSet(signal.SetGlobalSignal, sig)
	require.NoError(t, err)
	require.True(t, gsr.Has(signal.GlobalSignalColumn))
	col, err := gsr.Column(signal.GlobalSignalColumn)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 4}, col)

	_, err = m.ForSet(signal.ConfoundSet(42), sig)
	require.ErrorIs(t, err, signal.ErrUnknownConfoundSet)
}

func TestConfoundMatrix_ForSetGlobalSignal_Misaligned(t *testing.T) {
	sig, err := signal.NewSignalMatrix([][]float64{{1, 3}})
	require.NoError(t, err)
	m, err := signal.NewConfoundMatrix([]string{"fd"}, [][]float64{{0.1, 0.2}})
	require.NoError(t, err)

	_, err = m.ForSet(signal.SetGlobalSignal, sig)
	require.ErrorIs(t, err, signal.ErrShapeMismatch)
}

func TestAlignRows(t *testing.T) {
	sig, err := signal.NewSignalMatrix([][]float64{{1}, {2}})
	require.NoError(t, err)
	conf, err := signal.NewConfoundMatrix([]string{"fd"}, [][]float64{{0.1, 0.2}})
	require.NoError(t, err)
	require.NoError(t, signal.AlignRows(sig, conf))

	short, err := signal.NewConfoundMatrix([]string{"fd"}, [][]float64{{0.1}})
	require.NoError(t, err)
	require.ErrorIs(t, signal.AlignRows(sig, short), signal.ErrShapeMismatch)
}
