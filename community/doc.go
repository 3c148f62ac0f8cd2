// Package community partitions region graphs into communities by iterative
// modularity maximization (Louvain-style multilevel local search).
//
// Two variants share one engine:
//
//   - Louvain operates on a binary (or positively weighted) core.Graph.
//   - LouvainSigned operates on the raw signed correlation matrix, no
//     thresholding: the modularity objective splits into a positive and a
//     negative layer, Q = Q⁺·w⁺/(w⁺+w⁻) − Q⁻·w⁻/(w⁺+w⁻), so negative
//     weights penalize within-community placement and anti-correlation
//     structure survives.
//
// The engine repeats two phases until no reassignment improves Q by more
// than the tolerance or the level cap is hit (the caps guarantee
// termination): a local phase moving single nodes to the neighboring
// community with the largest positive modularity gain (ties break toward
// the lowest community id), then a coarsening phase collapsing communities
// into super-nodes whose self-loops hold the internal weight.
//
// Modularity maximization is NP-hard; this is a randomized local search,
// not exact optimization. Runs with the same seed (WithSeed) produce
// identical partitions; unseeded runs draw a fresh seed and ARE
// NONDETERMINISTIC across invocations — tests should assert modularity
// floors and community counts rather than exact assignments. Q values are
// comparable only within a variant; compare partitions across variants
// with AdjustedRand instead.
package community
