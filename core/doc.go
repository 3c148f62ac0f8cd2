// Package core defines the undirected region graph the connectivity
// pipeline analyzes: nodes are region indices 0..n−1, edges carry float64
// weights (1 for binary graphs, signed correlations for weighted graphs).
//
// A Graph is built once — NewGraph then AddEdge — and treated as immutable
// afterwards. The pipeline is a synchronous batch computation with no
// concurrent mutation, so the type carries no locks; values may be shared
// read-only across goroutines at the orchestration layer.
//
// Self-loops are rejected (region self-correlation carries no information
// for graph construction) and setting the same pair twice overwrites the
// previous weight.
//
// Beyond queries, core provides connected-component extraction: Components
// partitions the node set, GiantComponent returns the largest component
// with a retained/total report, and Subgraph derives an independent graph
// over a node subset with the old→new index mapping.
package core
