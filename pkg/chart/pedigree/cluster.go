package pedigree

import (
	"slices"

	"github.com/hwidmann/rootline/pkg/kin"
)

// cluster is a maximal set of same-generation people connected by spouse
// or sibling edges. A cluster moves as a unit during crossing
// minimization and its members keep their internal order throughout.
type cluster struct {
	members []string // comparator order, fixed at build time
}

// generationOrders holds the mutable per-generation cluster orderings the
// sweeps operate on.
type generationOrders struct {
	generations []int // ascending
	byGen       map[int][]*cluster
}

// buildClusters groups each generation's reachable people into clusters
// and establishes the initial ordering: members inside a cluster sort by
// the person comparator, clusters sort by their lowest-sort member.
func buildClusters(byID map[string]kin.Person, idx *kin.Index, gens map[string]int) *generationOrders {
	peopleByGen := make(map[int][]string)
	for id, g := range gens {
		peopleByGen[g] = append(peopleByGen[g], id)
	}

	orders := &generationOrders{byGen: make(map[int][]*cluster, len(peopleByGen))}
	for g := range peopleByGen {
		orders.generations = append(orders.generations, g)
	}
	slices.Sort(orders.generations)

	for _, g := range orders.generations {
		ids := kin.SortIDs(peopleByGen[g], byID)
		assigned := make(map[string]bool, len(ids))

		for _, id := range ids {
			if assigned[id] {
				continue
			}
			cl := &cluster{}
			// Flood fill over same-generation spouse/sibling edges.
			queue := []string{id}
			assigned[id] = true
			for len(queue) > 0 {
				curr := queue[0]
				queue = queue[1:]
				cl.members = append(cl.members, curr)
				for _, nbr := range levelNeighbors(idx, curr) {
					if assigned[nbr] {
						continue
					}
					if ng, ok := gens[nbr]; !ok || ng != g {
						continue
					}
					assigned[nbr] = true
					queue = append(queue, nbr)
				}
			}
			kin.SortIDs(cl.members, byID)
			orders.byGen[g] = append(orders.byGen[g], cl)
		}

		// Initial cluster order: lexicographic by lowest-sort member.
		slices.SortStableFunc(orders.byGen[g], func(a, b *cluster) int {
			return kin.Compare(byID[a.members[0]], byID[b.members[0]])
		})
	}
	return orders
}

// levelNeighbors returns the spouse and sibling neighbors of a person,
// the edges along which clusters form.
func levelNeighbors(idx *kin.Index, id string) []string {
	spouses := idx.Spouses(id)
	siblings := idx.Siblings(id)
	out := make([]string, 0, len(spouses)+len(siblings))
	out = append(out, spouses...)
	out = append(out, siblings...)
	return out
}

// flatten returns the person ids of a generation in current cluster order.
func flatten(clusters []*cluster) []string {
	var out []string
	for _, cl := range clusters {
		out = append(out, cl.members...)
	}
	return out
}

// posMap maps each id to its index in the slice.
func posMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
