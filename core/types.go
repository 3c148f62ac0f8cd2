// Package core: graph type, options and sentinel errors.
package core

import "errors"

// Sentinel errors for graph construction and queries.
var (
	// ErrBadOrder indicates a negative node count.
	ErrBadOrder = errors.New("core: node count must be non-negative")

	// ErrNodeOutOfRange indicates a node index outside 0..n−1.
	ErrNodeOutOfRange = errors.New("core: node index out of range")

	// ErrLoopNotAllowed indicates a self-loop edge.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrBadWeight indicates a NaN/Inf weight, or a weight other than 1 on
	// an unweighted graph.
	ErrBadWeight = errors.New("core: bad edge weight")

	// ErrNilGraph indicates a nil *Graph argument.
	ErrNilGraph = errors.New("core: graph is nil")

	// ErrEmptySubgraph indicates a Subgraph call with no nodes.
	ErrEmptySubgraph = errors.New("core: subgraph over empty node set")
)

// GraphOption configures a Graph before construction.
type GraphOption func(g *Graph)

// WithWeighted allows arbitrary finite, nonzero edge weights (including
// negative ones, used for signed correlation graphs). Without it every
// edge weight must be exactly 1.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// Graph is an undirected graph over node indices 0..n−1.
//
// adj[u] maps neighbor → weight; every edge is stored in both directions.
// The zero number of edges and all queries are O(1) or O(deg).
type Graph struct {
	n        int
	weighted bool
	edgeCnt  int
	adj      []map[int]float64
}

// ComponentReport summarizes giant-component extraction.
type ComponentReport struct {
	Retained int // nodes in the giant component
	Total    int // nodes in the graph
}
