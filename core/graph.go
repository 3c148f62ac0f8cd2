package core

import (
	"fmt"
	"math"
	"sort"
)

// NewGraph creates a graph with n isolated nodes (indices 0..n−1).
// By default the graph is unweighted: every edge weight must be 1.
// Complexity: O(n).
func NewGraph(n int, opts ...GraphOption) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadOrder, n)
	}
	g := &Graph{n: n, adj: make([]map[int]float64, n)}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// NodeCount returns n, the number of nodes.
func (g *Graph) NodeCount() int { return g.n }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edgeCnt }

// Weighted reports whether arbitrary edge weights are allowed.
func (g *Graph) Weighted() bool { return g.weighted }

// AddEdge connects u and v with weight w (stored in both directions).
// Setting the same pair again overwrites the previous weight.
//
// Errors: ErrNodeOutOfRange, ErrLoopNotAllowed, ErrBadWeight (NaN/Inf
// always; any weight other than 1 on an unweighted graph; exact zero on a
// weighted graph, which would be an absent edge).
func (g *Graph) AddEdge(u, v int, w float64) error {
	if err := g.check(u); err != nil {
		return err
	}
	if err := g.check(v); err != nil {
		return err
	}
	if u == v {
		return fmt.Errorf("%w: node %d", ErrLoopNotAllowed, u)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: %v", ErrBadWeight, w)
	}
	if !g.weighted && w != 1 {
		return fmt.Errorf("%w: %v on unweighted graph", ErrBadWeight, w)
	}
	if g.weighted && w == 0 {
		return fmt.Errorf("%w: zero weight", ErrBadWeight)
	}
	if g.adj[u] == nil {
		g.adj[u] = make(map[int]float64)
	}
	if g.adj[v] == nil {
		g.adj[v] = make(map[int]float64)
	}
	if _, exists := g.adj[u][v]; !exists {
		g.edgeCnt++
	}
	g.adj[u][v] = w
	g.adj[v][u] = w

	return nil
}

// HasEdge reports whether u and v are connected.
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.n || g.adj[u] == nil {
		return false
	}
	_, ok := g.adj[u][v]

	return ok
}

// Weight returns the weight of edge (u, v), or 0 when absent.
func (g *Graph) Weight(u, v int) float64 {
	if u < 0 || u >= g.n || g.adj[u] == nil {
		return 0
	}

	return g.adj[u][v]
}

// Neighbors returns the sorted neighbor indices of u.
// Errors: ErrNodeOutOfRange.
func (g *Graph) Neighbors(u int) ([]int, error) {
	if err := g.check(u); err != nil {
		return nil, err
	}
	out := make([]int, 0, len(g.adj[u]))
	for v := range g.adj[u] {
		out = append(out, v)
	}
	sort.Ints(out)

	return out, nil
}

// Degree returns the number of neighbors of u.
// Errors: ErrNodeOutOfRange.
func (g *Graph) Degree(u int) (int, error) {
	if err := g.check(u); err != nil {
		return 0, err
	}

	return len(g.adj[u]), nil
}

// Strength returns the sum of |w| over the edges incident to u.
// Errors: ErrNodeOutOfRange.
func (g *Graph) Strength(u int) (float64, error) {
	if err := g.check(u); err != nil {
		return 0, err
	}
	s := 0.0
	for _, w := range g.adj[u] {
		s += math.Abs(w)
	}

	return s, nil
}

// Density returns the fraction of possible undirected edges present:
// E / (n·(n−1)/2). Zero for graphs with fewer than two nodes.
func (g *Graph) Density() float64 {
	if g.n < 2 {
		return 0
	}

	return float64(g.edgeCnt) / (float64(g.n) * float64(g.n-1) / 2)
}

// Matrix exports the graph as a dense symmetric n×n weight matrix with a
// zero diagonal. Complexity: O(n² + E).
func (g *Graph) Matrix() [][]float64 {
	out := make([][]float64, g.n)
	for i := range out {
		out[i] = make([]float64, g.n)
	}
	for u, nbrs := range g.adj {
		for v, w := range nbrs {
			out[u][v] = w
		}
	}

	return out
}

// check validates a node index.
func (g *Graph) check(u int) error {
	if u < 0 || u >= g.n {
		return fmt.Errorf("%w: %d (n=%d)", ErrNodeOutOfRange, u, g.n)
	}

	return nil
}
