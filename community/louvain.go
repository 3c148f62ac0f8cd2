package community

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/connectome/core"
)

// halfEdge is one direction of an undirected weighted edge.
type halfEdge struct {
	to int
	w  float64 // always positive; the layer carries the sign
}

// layered is one coarsening level split into a positive and a negative
// weight layer. Every inter-node edge is stored in both directions; self
// weights hold the internal weight of collapsed communities. The degree
// convention counts a self weight twice, so posTot/negTot equal 2m± of
// the respective layer.
type layered struct {
	n       int
	pos     [][]halfEdge
	neg     [][]halfEdge
	posSelf []float64
	negSelf []float64
	posDeg  []float64
	negDeg  []float64
	posTot  float64 // 2m⁺
	negTot  float64 // 2m⁻
}

// Louvain runs multilevel modularity maximization on a binary or
// positively weighted graph.
//
// Preconditions: g non-nil (ErrNilGraph) with at least one node
// (ErrEmptyGraph). Negative edge weights belong to LouvainSigned and are
// rejected here with core.ErrBadWeight context.
//
// The returned Partition carries the per-node community assignment (dense
// ids), the achieved modularity Q and the number of coarsening levels.
// Complexity: O(sweeps · E) per level, a handful of levels in practice.
func Louvain(g *core.Graph, opts ...Option) (*Partition, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.NodeCount()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	l := newLayered(n)
	for u := 0; u < n; u++ {
		nbrs, err := g.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, v := range nbrs {
			if v <= u {
				continue // each undirected edge once
			}
			w := g.Weight(u, v)
			if w < 0 {
				return nil, fmt.Errorf("%w: negative weight %g on edge (%d,%d); use LouvainSigned",
					core.ErrBadWeight, w, u, v)
			}
			l.addEdge(u, v, w)
		}
	}
	l.finalize()

	return run(l, options(opts)), nil
}

// LouvainSigned runs the same multilevel strategy on a raw signed weight
// matrix (typically the unthresholded correlation matrix). The modularity
// objective is the two-layer signed form
//
//	Q = Q⁺·w⁺/(w⁺+w⁻) − Q⁻·w⁻/(w⁺+w⁻),
//
// so placing anti-correlated nodes in one community costs modularity.
//
// Preconditions: non-empty square symmetric matrix (ErrEmptyGraph,
// ErrNonSquare, ErrAsymmetry). The diagonal is ignored.
func LouvainSigned(corr [][]float64, opts ...Option) (*Partition, error) {
	if len(corr) == 0 {
		return nil, ErrEmptyGraph
	}
	n := len(corr)
	for i, row := range corr {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns for %d rows", ErrNonSquare, i, len(row), n)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(corr[i][j]-corr[j][i]) > symmetryEps {
				return nil, fmt.Errorf("%w: (%d,%d)=%g vs (%d,%d)=%g",
					ErrAsymmetry, i, j, corr[i][j], j, i, corr[j][i])
			}
		}
	}

	l := newLayered(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if corr[i][j] != 0 {
				l.addEdge(i, j, corr[i][j])
			}
		}
	}
	l.finalize()

	return run(l, options(opts)), nil
}

// options folds Option values over the defaults and draws a fresh seed for
// unseeded runs (documented nondeterminism).
func options(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.Seeded {
		cfg.Seed = rand.Int63()
	}

	return cfg
}

// newLayered allocates an empty level over n nodes.
func newLayered(n int) *layered {
	return &layered{
		n:       n,
		pos:     make([][]halfEdge, n),
		neg:     make([][]halfEdge, n),
		posSelf: make([]float64, n),
		negSelf: make([]float64, n),
	}
}

// addEdge records an undirected edge, routed by sign: negative weights go
// to the negative layer with their magnitude.
func (l *layered) addEdge(u, v int, w float64) {
	if w >= 0 {
		l.pos[u] = append(l.pos[u], halfEdge{to: v, w: w})
		l.pos[v] = append(l.pos[v], halfEdge{to: u, w: w})
	} else {
		l.neg[u] = append(l.neg[u], halfEdge{to: v, w: -w})
		l.neg[v] = append(l.neg[v], halfEdge{to: u, w: -w})
	}
}

// finalize computes degrees and layer totals. Degrees count self weights
// twice, matching the W_ii = 2·self convention of collapsed communities.
func (l *layered) finalize() {
	l.posDeg = make([]float64, l.n)
	l.negDeg = make([]float64, l.n)
	l.posTot, l.negTot = 0, 0
	for u := 0; u < l.n; u++ {
		d := 2 * l.posSelf[u]
		for _, e := range l.pos[u] {
			d += e.w
		}
		l.posDeg[u] = d
		l.posTot += d

		d = 2 * l.negSelf[u]
		for _, e := range l.neg[u] {
			d += e.w
		}
		l.negDeg[u] = d
		l.negTot += d
	}
}

// run is the multilevel loop: local phase, compose the assignment, coarsen,
// repeat until no move improves Q or MaxLevels is reached.
func run(l *layered, cfg Options) *Partition {
	rng := rand.New(rand.NewSource(cfg.Seed))

	// orig maps original node → node of the current level.
	orig := make([]int, l.n)
	for i := range orig {
		orig[i] = i
	}
	base := l // original level, kept for the final Q
	cur := l
	levels := 0

	for levels < cfg.MaxLevels {
		comm, moved := localPhase(cur, cfg, rng)
		if !moved {
			break
		}
		k := relabel(comm)
		for i := range orig {
			orig[i] = comm[orig[i]]
		}
		levels++
		if k == cur.n {
			break // nothing collapsed; a further level cannot differ
		}
		cur = coarsen(cur, comm, k)
	}

	relabel(orig)

	return &Partition{
		Communities: orig,
		Q:           modularity(base, orig),
		Levels:      levels,
	}
}

// localPhase greedily moves single nodes to the neighboring community with
// the largest positive modularity gain until a sweep makes no move or
// MaxSweeps is hit. Node order is shuffled each sweep (seeded RNG). Ties
// break toward the lowest community id by scanning candidates in
// ascending order and replacing only on strict improvement.
func localPhase(l *layered, cfg Options, rng *rand.Rand) ([]int, bool) {
	comm := make([]int, l.n)
	posCTot := make([]float64, l.n)
	negCTot := make([]float64, l.n)
	for i := 0; i < l.n; i++ {
		comm[i] = i
		posCTot[i] = l.posDeg[i]
		negCTot[i] = l.negDeg[i]
	}
	if l.posTot == 0 && l.negTot == 0 {
		return comm, false // edgeless level: singletons, nothing to optimize
	}

	order := rng.Perm(l.n)
	posLinks := make(map[int]float64, 8)
	negLinks := make(map[int]float64, 8)
	movedAny := false

	for sweep := 0; sweep < cfg.MaxSweeps; sweep++ {
		movedSweep := false
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, u := range order {
			cu := comm[u]

			// Weights from u to each adjacent community.
			for c := range posLinks {
				delete(posLinks, c)
			}
			for c := range negLinks {
				delete(negLinks, c)
			}
			for _, e := range l.pos[u] {
				posLinks[comm[e.to]] += e.w
			}
			for _, e := range l.neg[u] {
				negLinks[comm[e.to]] += e.w
			}

			// Detach u from its community for unbiased gain evaluation.
			posCTot[cu] -= l.posDeg[u]
			negCTot[cu] -= l.negDeg[u]

			gain := func(c int) float64 {
				g := 0.0
				if l.posTot > 0 {
					g += posLinks[c] - posCTot[c]*l.posDeg[u]/l.posTot
				}
				if l.negTot > 0 {
					g -= negLinks[c] - negCTot[c]*l.negDeg[u]/l.negTot
				}

				return g
			}

			// Candidate communities, ascending for the tie-break policy.
			cands := make([]int, 0, len(posLinks)+len(negLinks)+1)
			seen := map[int]struct{}{cu: {}}
			cands = append(cands, cu)
			for c := range posLinks {
				if _, ok := seen[c]; !ok {
					seen[c] = struct{}{}
					cands = append(cands, c)
				}
			}
			for c := range negLinks {
				if _, ok := seen[c]; !ok {
					seen[c] = struct{}{}
					cands = append(cands, c)
				}
			}
			sort.Ints(cands)

			stay := gain(cu)
			best, bestGain := cu, stay
			for _, c := range cands {
				if g := gain(c); g > bestGain {
					best, bestGain = c, g
				}
			}
			if best != cu && bestGain-stay > cfg.Tolerance {
				comm[u] = best
				movedSweep = true
				movedAny = true
			} else {
				best = cu
			}
			posCTot[best] += l.posDeg[u]
			negCTot[best] += l.negDeg[u]
		}
		if !movedSweep {
			break
		}
	}

	return comm, movedAny
}

// relabel rewrites community ids densely, 0..k−1 by first appearance in
// node order, and returns k.
func relabel(comm []int) int {
	next := 0
	index := make(map[int]int, len(comm))
	for i, c := range comm {
		nc, ok := index[c]
		if !ok {
			nc = next
			index[c] = nc
			next++
		}
		comm[i] = nc
	}

	return next
}

// coarsen collapses each community into a super-node. Internal weight
// (including prior self weights) becomes the super-node's self weight;
// cross-community weight is summed per community pair.
func coarsen(l *layered, comm []int, k int) *layered {
	nl := newLayered(k)
	posCross := make(map[[2]int]float64)
	negCross := make(map[[2]int]float64)

	for u := 0; u < l.n; u++ {
		cu := comm[u]
		nl.posSelf[cu] += l.posSelf[u]
		nl.negSelf[cu] += l.negSelf[u]
		for _, e := range l.pos[u] {
			if e.to <= u {
				continue
			}
			if cv := comm[e.to]; cv == cu {
				nl.posSelf[cu] += e.w
			} else {
				posCross[pairKey(cu, cv)] += e.w
			}
		}
		for _, e := range l.neg[u] {
			if e.to <= u {
				continue
			}
			if cv := comm[e.to]; cv == cu {
				nl.negSelf[cu] += e.w
			} else {
				negCross[pairKey(cu, cv)] += e.w
			}
		}
	}
	for key, w := range posCross {
		nl.pos[key[0]] = append(nl.pos[key[0]], halfEdge{to: key[1], w: w})
		nl.pos[key[1]] = append(nl.pos[key[1]], halfEdge{to: key[0], w: w})
	}
	for key, w := range negCross {
		nl.neg[key[0]] = append(nl.neg[key[0]], halfEdge{to: key[1], w: w})
		nl.neg[key[1]] = append(nl.neg[key[1]], halfEdge{to: key[0], w: w})
	}
	nl.finalize()

	return nl
}

// pairKey orders a community pair for cross-weight accumulation.
func pairKey(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}

	return [2]int{b, a}
}

// modularity evaluates the (signed, two-layer) modularity of an assignment
// on a level. With an empty negative layer it reduces to the standard
// Newman–Girvan Q.
func modularity(l *layered, comm []int) float64 {
	k := 0
	for _, c := range comm {
		if c+1 > k {
			k = c + 1
		}
	}
	posIn := make([]float64, k)
	negIn := make([]float64, k)
	posTot := make([]float64, k)
	negTot := make([]float64, k)

	for u := 0; u < l.n; u++ {
		cu := comm[u]
		posTot[cu] += l.posDeg[u]
		negTot[cu] += l.negDeg[u]
		posIn[cu] += 2 * l.posSelf[u]
		negIn[cu] += 2 * l.negSelf[u]
		for _, e := range l.pos[u] {
			if comm[e.to] == cu {
				posIn[cu] += e.w // both directions visit, so counted twice
			}
		}
		for _, e := range l.neg[u] {
			if comm[e.to] == cu {
				negIn[cu] += e.w
			}
		}
	}

	qPos, qNeg := 0.0, 0.0
	for c := 0; c < k; c++ {
		if l.posTot > 0 {
			qPos += posIn[c]/l.posTot - (posTot[c]/l.posTot)*(posTot[c]/l.posTot)
		}
		if l.negTot > 0 {
			qNeg += negIn[c]/l.negTot - (negTot[c]/l.negTot)*(negTot[c]/l.negTot)
		}
	}
	total := l.posTot + l.negTot
	if total == 0 {
		return 0
	}

	return qPos*(l.posTot/total) - qNeg*(l.negTot/total)
}
