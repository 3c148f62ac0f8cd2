package reorder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connectome/reorder"
)

func TestByLabel_GroupsAndBoundaries(t *testing.T) {
	labels := []string{"visual", "default", "visual", "motor", "default"}

	ord, err := reorder.ByLabel(labels)
	require.NoError(t, err)

	// Lexicographic groups, stable within each.
	require.Equal(t, []int{1, 4, 3, 0, 2}, ord.Perm)
	require.Equal(t, []string{"default", "motor", "visual"}, ord.Groups)
	require.Equal(t, []int{2, 3}, ord.Boundaries)
}

func TestByLabel_SingleGroupHasNoBoundaries(t *testing.T) {
	ord, err := reorder.ByLabel([]string{"dmn", "dmn", "dmn"})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, ord.Perm)
	require.Equal(t, []string{"dmn"}, ord.Groups)
	require.Empty(t, ord.Boundaries)
}

func TestByLabel_Empty(t *testing.T) {
	_, err := reorder.ByLabel(nil)
	require.ErrorIs(t, err, reorder.ErrEmptyLabels)
}

func TestApply_PermutesRowsAndColumns(t *testing.T) {
	ord, err := reorder.ByLabel([]string{"b", "a", "b"})
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 2}, ord.Perm)

	m := [][]float64{
		{0, 0.1, 0.2},
		{0.1, 0, 0.3},
		{0.2, 0.3, 0},
	}
	got, err := ord.Apply(m)
	require.NoError(t, err)
	require.Equal(t, [][]float64{
		{0, 0.1, 0.3},
		{0.1, 0, 0.2},
		{0.3, 0.2, 0},
	}, got)

	// Input untouched.
	require.Equal(t, 0.1, m[0][1])
}

func TestApply_ShapeValidation(t *testing.T) {
	ord, err := reorder.ByLabel([]string{"a", "b"})
	require.NoError(t, err)

	_, err = ord.Apply([][]float64{{1}})
	require.ErrorIs(t, err, reorder.ErrShapeMismatch)

	_, err = ord.Apply([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, reorder.ErrShapeMismatch)
}

func TestInverse_RoundTrip(t *testing.T) {
	labels := []string{"c", "a", "b", "a", "c"}
	ord, err := reorder.ByLabel(labels)
	require.NoError(t, err)

	m := [][]float64{
		{0, 1, 2, 3, 4},
		{1, 0, 5, 6, 7},
		{2, 5, 0, 8, 9},
		{3, 6, 8, 0, 10},
		{4, 7, 9, 10, 0},
	}
	disp, err := ord.Apply(m)
	require.NoError(t, err)
	back, err := ord.Inverse().Apply(disp)
	require.NoError(t, err)
	require.Equal(t, m, back)
}
