package core

import (
	"fmt"
	"sort"
)

// Components partitions the node set into connected components.
//
// Each component is a sorted node list; components are ordered by their
// smallest member, so the result is deterministic for a given graph.
// Isolated nodes form singleton components.
// Complexity: O(n + E) via breadth-first traversal.
func (g *Graph) Components() [][]int {
	seen := make([]bool, g.n)
	var comps [][]int
	queue := make([]int, 0, g.n)

	for start := 0; start < g.n; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue = append(queue[:0], start)
		comp := []int{start}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for v := range g.adj[u] {
				if !seen[v] {
					seen[v] = true
					comp = append(comp, v)
					queue = append(queue, v)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}

	return comps
}

// GiantComponent returns the nodes of the largest connected component and
// a retained/total report. Ties break toward the component encountered
// first in node-index order (the one with the smallest member).
func (g *Graph) GiantComponent() ([]int, ComponentReport) {
	comps := g.Components()
	report := ComponentReport{Total: g.n}
	if len(comps) == 0 {
		return nil, report
	}
	best := comps[0]
	for _, c := range comps[1:] {
		if len(c) > len(best) { // strict: earlier component wins ties
			best = c
		}
	}
	report.Retained = len(best)

	return best, report
}

// Subgraph derives an independent graph over the given nodes, renumbered
// 0..len(nodes)−1 in the order given. Only edges with both endpoints in
// the subset survive. The second return value maps old index → new index.
//
// Errors: ErrNilGraph on a nil receiver chain is not possible here, but
// ErrEmptySubgraph and ErrNodeOutOfRange are validated; a duplicated node
// index is also ErrNodeOutOfRange (each node may appear once).
func (g *Graph) Subgraph(nodes []int) (*Graph, map[int]int, error) {
	if len(nodes) == 0 {
		return nil, nil, ErrEmptySubgraph
	}
	index := make(map[int]int, len(nodes))
	for newIdx, u := range nodes {
		if u < 0 || u >= g.n {
			return nil, nil, fmt.Errorf("%w: %d (n=%d)", ErrNodeOutOfRange, u, g.n)
		}
		if _, dup := index[u]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate node %d", ErrNodeOutOfRange, u)
		}
		index[u] = newIdx
	}

	var opts []GraphOption
	if g.weighted {
		opts = append(opts, WithWeighted())
	}
	sub, err := NewGraph(len(nodes), opts...)
	if err != nil {
		return nil, nil, err
	}
	for _, u := range nodes {
		for v, w := range g.adj[u] {
			nv, in := index[v]
			if !in || index[u] > nv { // add each surviving edge once
				continue
			}
			if err := sub.AddEdge(index[u], nv, w); err != nil {
				return nil, nil, err
			}
		}
	}

	return sub, index, nil
}
