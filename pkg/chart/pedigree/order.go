package pedigree

import (
	"slices"

	"github.com/hwidmann/rootline/pkg/kin"
)

// minimizeCrossings runs up to maxPairs forward+backward median sweeps
// over the per-generation cluster orders and returns the number of pairs
// actually executed.
//
// A forward sweep reorders each generation's clusters by the median
// position of their neighbors in the previous generation; a backward
// sweep does the same against the next generation. Only whole clusters
// move; members keep their internal order. This is the classic median
// heuristic for layered graph drawing: it is not globally optimal
// (crossing minimization is NP-hard) but tends not to worsen after a
// full sweep pair. A pair that changes no ordering ends the search early.
func minimizeCrossings(orders *generationOrders, idx *kin.Index, gens map[string]int, maxPairs int) int {
	if len(orders.generations) < 2 {
		return 0
	}

	pairs := 0
	for i := 0; i < maxPairs; i++ {
		changed := false
		// Forward: second generation onward, against the one above.
		for gi := 1; gi < len(orders.generations); gi++ {
			g := orders.generations[gi]
			prev := orders.generations[gi-1]
			if sweepGeneration(orders, idx, gens, g, prev) {
				changed = true
			}
		}
		// Backward: second-to-last generation down, against the one below.
		for gi := len(orders.generations) - 2; gi >= 0; gi-- {
			g := orders.generations[gi]
			next := orders.generations[gi+1]
			if sweepGeneration(orders, idx, gens, g, next) {
				changed = true
			}
		}
		pairs++
		if !changed {
			break
		}
	}
	return pairs
}

// sweepGeneration reorders generation g's clusters by neighbor medians in
// generation adj. Reports whether the order changed.
func sweepGeneration(orders *generationOrders, idx *kin.Index, gens map[string]int, g, adj int) bool {
	clusters := orders.byGen[g]
	if len(clusters) < 2 {
		return false
	}
	adjPos := posMap(flatten(orders.byGen[adj]))

	type ranked struct {
		cl     *cluster
		median float64
	}
	rankedClusters := make([]ranked, len(clusters))
	for i, cl := range clusters {
		rankedClusters[i] = ranked{cl: cl, median: clusterMedian(cl, idx, gens, adj, adjPos, float64(i))}
	}

	slices.SortStableFunc(rankedClusters, func(a, b ranked) int {
		switch {
		case a.median < b.median:
			return -1
		case a.median > b.median:
			return 1
		default:
			return 0
		}
	})

	changed := false
	for i := range rankedClusters {
		if rankedClusters[i].cl != clusters[i] {
			changed = true
		}
		clusters[i] = rankedClusters[i].cl
	}
	return changed
}

// clusterMedian computes the median order index of a cluster's neighbors
// in the adjacent generation. Clusters with no neighbors there keep their
// current position (fallback), the standard way to leave untethered nodes
// where they are.
func clusterMedian(cl *cluster, idx *kin.Index, gens map[string]int, adj int, adjPos map[string]int, fallback float64) float64 {
	var positions []int
	for _, id := range cl.members {
		for _, nbr := range idx.Parents(id) {
			if gens[nbr] == adj {
				if p, ok := adjPos[nbr]; ok {
					positions = append(positions, p)
				}
			}
		}
		for _, nbr := range idx.Children(id) {
			if gens[nbr] == adj {
				if p, ok := adjPos[nbr]; ok {
					positions = append(positions, p)
				}
			}
		}
	}
	if len(positions) == 0 {
		return fallback
	}
	slices.Sort(positions)
	mid := len(positions) / 2
	if len(positions)%2 == 1 {
		return float64(positions[mid])
	}
	return float64(positions[mid-1]+positions[mid]) / 2
}

// totalCrossings sums parent-link crossings between every adjacent
// generation pair in the current orders.
func totalCrossings(orders *generationOrders, idx *kin.Index, gens map[string]int) int {
	total := 0
	for gi := 0; gi < len(orders.generations)-1; gi++ {
		upper := flatten(orders.byGen[orders.generations[gi]])
		lower := flatten(orders.byGen[orders.generations[gi+1]])
		total += countLayerCrossings(idx, gens, upper, lower, orders.generations[gi+1])
	}
	return total
}

// countLayerCrossings counts parent-child edge crossings between two
// adjacent generations using a Fenwick tree, O(E log V) instead of the
// naive O(E²) pair scan. Two edges cross iff their source order and
// target order invert, so the count equals the number of inversions in
// the target-position sequence when edges are sorted by source position.
func countLayerCrossings(idx *kin.Index, gens map[string]int, upper, lower []string, lowerGen int) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}
	lowerPos := posMap(lower)

	type edge struct{ upper, lower int }
	var edges []edge
	for i, id := range upper {
		for _, child := range idx.Children(id) {
			if gens[child] != lowerGen {
				continue
			}
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for i := e.lower + 1; i < len(fenwick); i += i & (-i) {
			fenwick[i]++
		}
	}
	return crossings
}
