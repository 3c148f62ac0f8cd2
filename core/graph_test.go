// Package core_test validates graph construction, queries and
// connected-component extraction.
package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connectome/core"
)

func TestNewGraph_Validation(t *testing.T) {
	_, err := core.NewGraph(-1)
	require.ErrorIs(t, err, core.ErrBadOrder)

	g, err := core.NewGraph(0)
	require.NoError(t, err)
	require.Equal(t, 0, g.NodeCount())
}

func TestAddEdge_UnweightedRequiresUnitWeight(t *testing.T) {
	g, err := core.NewGraph(3)
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(0, 1, 1))
	require.ErrorIs(t, g.AddEdge(1, 2, 0.5), core.ErrBadWeight)
}

func TestAddEdge_WeightedAcceptsSignedWeights(t *testing.T) {
	g, err := core.NewGraph(3, core.WithWeighted())
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(0, 1, -0.4))
	require.Equal(t, -0.4, g.Weight(0, 1))
	require.Equal(t, -0.4, g.Weight(1, 0), "undirected: both directions")

	require.ErrorIs(t, g.AddEdge(0, 2, 0), core.ErrBadWeight)
	require.ErrorIs(t, g.AddEdge(0, 2, math.NaN()), core.ErrBadWeight)
}

func TestAddEdge_RejectsLoopsAndRangeErrors(t *testing.T) {
	g, err := core.NewGraph(2)
	require.NoError(t, err)

	require.ErrorIs(t, g.AddEdge(1, 1, 1), core.ErrLoopNotAllowed)
	require.ErrorIs(t, g.AddEdge(0, 2, 1), core.ErrNodeOutOfRange)
	require.ErrorIs(t, g.AddEdge(-1, 0, 1), core.ErrNodeOutOfRange)
}

func TestAddEdge_OverwriteDoesNotDoubleCount(t *testing.T) {
	g, err := core.NewGraph(2, core.WithWeighted())
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(0, 1, 0.3))
	require.NoError(t, g.AddEdge(0, 1, 0.8))
	require.Equal(t, 1, g.EdgeCount())
	require.Equal(t, 0.8, g.Weight(0, 1))
}

func TestQueries(t *testing.T) {
	g, err := core.NewGraph(4, core.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 0.5))
	require.NoError(t, g.AddEdge(0, 2, -0.5))

	require.True(t, g.HasEdge(0, 1))
	require.False(t, g.HasEdge(1, 2))

	nbrs, err := g.Neighbors(0)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, nbrs)

	deg, err := g.Degree(0)
	require.NoError(t, err)
	require.Equal(t, 2, deg)

	s, err := g.Strength(0)
	require.NoError(t, err)
	require.Equal(t, 1.0, s, "strength sums absolute weights")

	// 2 edges over C(4,2)=6 possible.
	require.InDelta(t, 2.0/6.0, g.Density(), 1e-15)

	_, err = g.Neighbors(9)
	require.ErrorIs(t, err, core.ErrNodeOutOfRange)
}

func TestMatrix_SymmetricZeroDiagonal(t *testing.T) {
	g, err := core.NewGraph(3, core.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 2, 0.7))

	m := g.Matrix()
	require.Equal(t, [][]float64{
		{0, 0, 0.7},
		{0, 0, 0},
		{0.7, 0, 0},
	}, m)
}

func TestComponents_SingletonsAndOrdering(t *testing.T) {
	// Nodes: 0-1 connected, 2 isolated, 3-4 connected.
	g, err := core.NewGraph(5)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(4, 3, 1))

	comps := g.Components()
	require.Equal(t, [][]int{{0, 1}, {2}, {3, 4}}, comps)
}

func TestGiantComponent_TieBreaksToFirst(t *testing.T) {
	// Two components of equal size: {0,1} and {2,3}.
	g, err := core.NewGraph(4)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(2, 3, 1))

	giant, rep := g.GiantComponent()
	require.Equal(t, []int{0, 1}, giant)
	require.Equal(t, core.ComponentReport{Retained: 2, Total: 4}, rep)
}

func TestGiantComponent_LargestWins(t *testing.T) {
	g, err := core.NewGraph(5)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(2, 3, 1))
	require.NoError(t, g.AddEdge(3, 4, 1))

	giant, rep := g.GiantComponent()
	require.Equal(t, []int{2, 3, 4}, giant)
	require.Equal(t, 3, rep.Retained)
}

func TestSubgraph(t *testing.T) {
	g, err := core.NewGraph(4, core.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 0.2))
	require.NoError(t, g.AddEdge(1, 3, 0.9))
	require.NoError(t, g.AddEdge(0, 2, 0.4))

	sub, index, err := g.Subgraph([]int{0, 1, 3})
	require.NoError(t, err)
	require.Equal(t, 3, sub.NodeCount())
	require.Equal(t, 2, sub.EdgeCount(), "edge to dropped node 2 must vanish")
	require.Equal(t, 0.2, sub.Weight(index[0], index[1]))
	require.Equal(t, 0.9, sub.Weight(index[1], index[3]))

	_, _, err = g.Subgraph(nil)
	require.ErrorIs(t, err, core.ErrEmptySubgraph)
	_, _, err = g.Subgraph([]int{0, 0})
	require.ErrorIs(t, err, core.ErrNodeOutOfRange)
	_, _, err = g.Subgraph([]int{7})
	require.ErrorIs(t, err, core.ErrNodeOutOfRange)
}
