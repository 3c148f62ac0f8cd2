// Package connectome turns raw per-vertex brain signal into network-level
// connectivity: clean the signal, summarize it per region, correlate,
// threshold, and partition into communities.
//
// 🚀 What is connectome?
//
//	A pure-Go functional connectivity pipeline built from small composable
//	packages:
//		• Signal model: time×unit signal and confound matrices
//		• Cleaning: confound regression, with or without the global signal
//		• Censoring: motion-based frame scrubbing with a spill-over window
//		• Aggregation: vertex→region means over a parcellation
//		• Connectivity: full and partial (graphical-lasso) correlation
//		• Thresholding: percentile-based binary adjacency at a target density
//		• Graph analysis: components, giant component, density
//		• Communities: Louvain modularity, binary and signed variants
//		• Layout: network-label ordering for matrix display
//
// ✨ Why choose connectome?
//
//   - Deterministic where it matters – everything up to community
//     detection reproduces bit for bit; detection takes an explicit seed
//   - Explicit errors – sentinel errors per package, matched with errors.Is
//   - Numerics on gonum – dense linear algebra and statistics come from
//     gonum.org/v1/gonum, not hand-rolled loops
//
// Under the hood, everything is organized in per-stage subpackages:
//
//	signal/    — SignalMatrix & ConfoundMatrix containers + validation
//	regress/   — least-squares confound removal
//	scrub/     — motion masks and frame filtering
//	parcel/    — region tables, degenerate-region tracking
//	conn/      — correlation and sparse inverse covariance
//	adjacency/ — percentile thresholding into binary matrices
//	core/      — undirected graph, components, subgraphs
//	community/ — multilevel modularity detection + adjusted Rand index
//	reorder/   — grouped display orderings
//
// A typical run composes them in pipeline order:
//
//	R, _ := regress.Residualize(s, confounds)       // clean
//	table, _ := parcel.Aggregate(R, labels)         // summarize
//	mask, _ := scrub.BuildMask(fd)                  // censor
//	kept, _ := table.Filter(mask)                   //
//	res, _ := conn.FullCorrelation(kept)            // correlate
//	bin, _ := adjacency.Threshold(res.Matrix, 0.10) // threshold
//	g, _ := bin.Graph()                             //
//	part, _ := community.Louvain(g)                 // partition
//
// Dive into each subpackage's doc.go for contracts and edge-case behavior.
//
//	go get github.com/katalvlaran/connectome
package connectome
