package community_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connectome/community"
	"github.com/katalvlaran/connectome/core"
)

// twoTriangles builds two disconnected triangles: {0,1,2} and {3,4,5}.
func twoTriangles(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(6)
	require.NoError(t, err)
	for _, e := range [][2]int{{0, 1}, {1, 2}, {0, 2}, {3, 4}, {4, 5}, {3, 5}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 1))
	}

	return g
}

func TestLouvain_NilAndEmptyGraph(t *testing.T) {
	_, err := community.Louvain(nil)
	require.ErrorIs(t, err, community.ErrNilGraph)

	g, err := core.NewGraph(0)
	require.NoError(t, err)
	_, err = community.Louvain(g)
	require.ErrorIs(t, err, community.ErrEmptyGraph)
}

func TestLouvain_TwoTriangles(t *testing.T) {
	p, err := community.Louvain(twoTriangles(t), community.WithSeed(7))
	require.NoError(t, err)

	require.Equal(t, 2, p.CommunityCount())
	require.Greater(t, p.Q, 0.0)

	// Each triangle lands in one community and the two differ.
	c := p.Communities
	require.Equal(t, c[0], c[1])
	require.Equal(t, c[0], c[2])
	require.Equal(t, c[3], c[4])
	require.Equal(t, c[3], c[5])
	require.NotEqual(t, c[0], c[3])

	// Dense ids by first appearance.
	require.Equal(t, 0, c[0])
	require.Equal(t, 1, c[3])
}

func TestLouvain_UnseededRunsFindStructure(t *testing.T) {
	// Without a seed the node-visit order differs between runs, so the
	// assignments are not comparable. The recovered structure must still
	// be: two communities, one per triangle, with positive modularity.
	g := twoTriangles(t)
	for run := 0; run < 2; run++ {
		p, err := community.Louvain(g)
		require.NoError(t, err)
		require.Equal(t, 2, p.CommunityCount())
		require.Greater(t, p.Q, 0.4)
	}
}

func TestLouvain_SameSeedSamePartition(t *testing.T) {
	g := twoTriangles(t)
	a, err := community.Louvain(g, community.WithSeed(42))
	require.NoError(t, err)
	b, err := community.Louvain(g, community.WithSeed(42))
	require.NoError(t, err)

	require.Equal(t, a.Communities, b.Communities)
	require.Equal(t, a.Q, b.Q)
}

func TestLouvain_EdgelessGraphIsSingletons(t *testing.T) {
	g, err := core.NewGraph(4)
	require.NoError(t, err)

	p, err := community.Louvain(g, community.WithSeed(1))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, p.Communities)
	require.Zero(t, p.Q)
	require.Zero(t, p.Levels)
}

func TestLouvain_RejectsNegativeWeights(t *testing.T) {
	g, err := core.NewGraph(2, core.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, -0.5))

	_, err = community.Louvain(g)
	require.ErrorIs(t, err, core.ErrBadWeight)
}

func TestLouvainSigned_AntiCorrelatedBlocks(t *testing.T) {
	// Two blocks of three regions: strong positive coupling inside each
	// block, anti-correlation across blocks.
	n := 6
	corr := make([][]float64, n)
	for i := range corr {
		corr[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if (i < 3) == (j < 3) {
				corr[i][j] = 0.8
			} else {
				corr[i][j] = -0.6
			}
		}
	}

	p, err := community.LouvainSigned(corr, community.WithSeed(3))
	require.NoError(t, err)
	require.Equal(t, 2, p.CommunityCount())
	require.Equal(t, p.Communities[0], p.Communities[1])
	require.Equal(t, p.Communities[0], p.Communities[2])
	require.NotEqual(t, p.Communities[0], p.Communities[3])
	require.Greater(t, p.Q, 0.0)
}

func TestLouvainSigned_Validation(t *testing.T) {
	_, err := community.LouvainSigned(nil)
	require.ErrorIs(t, err, community.ErrEmptyGraph)

	_, err = community.LouvainSigned([][]float64{{0, 1}})
	require.ErrorIs(t, err, community.ErrNonSquare)

	_, err = community.LouvainSigned([][]float64{{0, 0.5}, {0.4, 0}})
	require.ErrorIs(t, err, community.ErrAsymmetry)
}

func TestLouvainSigned_AgreesWithBinaryOnCleanStructure(t *testing.T) {
	// Positive-only block matrix: both detectors should find the same two
	// blocks, giving ARI 1.
	n := 6
	corr := make([][]float64, n)
	for i := range corr {
		corr[i] = make([]float64, n)
	}
	g, err := core.NewGraph(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if (i < 3) == (j < 3) {
				corr[i][j], corr[j][i] = 0.9, 0.9
				require.NoError(t, g.AddEdge(i, j, 1))
			}
		}
	}

	pb, err := community.Louvain(g, community.WithSeed(11))
	require.NoError(t, err)
	ps, err := community.LouvainSigned(corr, community.WithSeed(11))
	require.NoError(t, err)

	ari, err := community.AdjustedRand(pb.Communities, ps.Communities)
	require.NoError(t, err)
	require.InDelta(t, 1.0, ari, 1e-12)
}

func TestPartition_Groups(t *testing.T) {
	p := &community.Partition{Communities: []int{0, 1, 0, 1, 2}}
	require.Equal(t, 3, p.CommunityCount())
	require.Equal(t, [][]int{{0, 2}, {1, 3}, {4}}, p.Groups())
}

func TestAdjustedRand(t *testing.T) {
	// Identical up to relabeling.
	ari, err := community.AdjustedRand([]int{0, 0, 1, 1}, []int{5, 5, 2, 2})
	require.NoError(t, err)
	require.InDelta(t, 1.0, ari, 1e-12)

	// Partial disagreement stays below 1.
	ari, err = community.AdjustedRand([]int{0, 0, 1, 1}, []int{0, 1, 1, 1})
	require.NoError(t, err)
	require.Less(t, ari, 1.0)

	// Length mismatch and empty input.
	_, err = community.AdjustedRand([]int{0}, []int{0, 1})
	require.ErrorIs(t, err, community.ErrPartitionMismatch)
	_, err = community.AdjustedRand(nil, nil)
	require.ErrorIs(t, err, community.ErrPartitionMismatch)
}
