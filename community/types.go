// Package community: sentinel errors, options and the Partition result.
package community

import "errors"

// Sentinel errors for community detection.
var (
	// ErrNilGraph indicates a nil *core.Graph input.
	ErrNilGraph = errors.New("community: graph is nil")

	// ErrEmptyGraph indicates a graph (or matrix) with no nodes.
	ErrEmptyGraph = errors.New("community: graph has no nodes")

	// ErrNonSquare indicates a non-square weight matrix.
	ErrNonSquare = errors.New("community: matrix is not square")

	// ErrAsymmetry indicates a weight matrix violating symmetry beyond the
	// numeric epsilon.
	ErrAsymmetry = errors.New("community: matrix is not symmetric within eps")

	// ErrPartitionMismatch indicates two partitions over different node
	// counts passed to AdjustedRand.
	ErrPartitionMismatch = errors.New("community: partitions cover different node sets")
)

// symmetryEps bounds the tolerated |m[i][j] − m[j][i]| for signed input.
const symmetryEps = 1e-9

// Partition is the outcome of one detection run.
type Partition struct {
	// Communities maps node index → community id. Ids are dense, starting
	// at 0, relabeled by first appearance in node order. The labeling is
	// arbitrary across runs unless the run was seeded.
	Communities []int

	// Q is the achieved modularity under the variant's objective. Not
	// comparable across variants.
	Q float64

	// Levels is the number of coarsening levels the run went through.
	Levels int
}

// CommunityCount returns the number of distinct communities.
func (p *Partition) CommunityCount() int {
	max := -1
	for _, c := range p.Communities {
		if c > max {
			max = c
		}
	}

	return max + 1
}

// Groups returns the communities as sorted node lists, indexed by
// community id.
func (p *Partition) Groups() [][]int {
	groups := make([][]int, p.CommunityCount())
	for node, c := range p.Communities {
		groups[c] = append(groups[c], node)
	}

	return groups
}

// Options configures a detection run.
//
// Seed      — RNG seed for the node-visit shuffles; Seeded marks it set.
// MaxLevels — cap on coarsening levels.
// MaxSweeps — cap on local-phase sweeps per level.
// Tolerance — minimum modularity gain for a move to count as improvement.
type Options struct {
	Seed      int64
	Seeded    bool
	MaxLevels int
	MaxSweeps int
	Tolerance float64
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns an unseeded run with MaxLevels = 32,
// MaxSweeps = 100, Tolerance = 1e-7.
func DefaultOptions() Options {
	return Options{MaxLevels: 32, MaxSweeps: 100, Tolerance: 1e-7}
}

// WithSeed fixes the RNG seed, making the run reproducible.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed; o.Seeded = true }
}

// WithMaxLevels caps the coarsening levels.
func WithMaxLevels(n int) Option {
	return func(o *Options) { o.MaxLevels = n }
}

// WithMaxSweeps caps the local-phase sweeps per level.
func WithMaxSweeps(n int) Option {
	return func(o *Options) { o.MaxSweeps = n }
}

// WithTolerance overrides the minimum gain counted as improvement.
func WithTolerance(eps float64) Option {
	return func(o *Options) { o.Tolerance = eps }
}
