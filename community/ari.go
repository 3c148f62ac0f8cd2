package community

import "fmt"

// AdjustedRand computes the adjusted Rand index between two partitions of
// the same node set, given as per-node community ids. It is 1 for
// identical partitions (up to relabeling), near 0 for independent ones and
// can go negative for partitions that agree less than chance. Use it to
// compare the binary and signed detector outputs on one dataset.
//
// Returns ErrPartitionMismatch when the slices are empty or differ in
// length.
func AdjustedRand(a, b []int) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d nodes", ErrPartitionMismatch, len(a), len(b))
	}

	// Contingency table over (community in a, community in b) pairs.
	joint := make(map[[2]int]float64)
	rowSum := make(map[int]float64)
	colSum := make(map[int]float64)
	for i := range a {
		joint[[2]int{a[i], b[i]}]++
		rowSum[a[i]]++
		colSum[b[i]]++
	}

	choose2 := func(x float64) float64 { return x * (x - 1) / 2 }

	var sumJoint, sumRow, sumCol float64
	for _, v := range joint {
		sumJoint += choose2(v)
	}
	for _, v := range rowSum {
		sumRow += choose2(v)
	}
	for _, v := range colSum {
		sumCol += choose2(v)
	}

	total := choose2(float64(len(a)))
	if total == 0 {
		return 1, nil // single node: every partition agrees
	}
	expected := sumRow * sumCol / total
	maxIndex := (sumRow + sumCol) / 2
	if maxIndex == expected {
		// Degenerate agreement (e.g. both all-singletons): identical by
		// construction.
		return 1, nil
	}

	return (sumJoint - expected) / (maxIndex - expected), nil
}
