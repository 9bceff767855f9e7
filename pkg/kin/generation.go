package kin

// Generations assigns a signed generation to every person reachable from
// rootID: the root is generation 0, parents are one less than their child,
// and spouses, partners and siblings of a person share that person's
// generation.
//
// The traversal is breadth-first with a visited set: each person is assigned
// a generation on first visit only and later-discovered paths to an already
// visited person are ignored. This terminates even when the relationship
// graph contains cycles (two lineages converging through a shared ancestor,
// or a relationship recorded on both sides) and yields a single generation
// per reachable person. People disconnected from the root do not appear in
// the result.
//
// Neighbor expansion order is fixed by the (surname, given name, id)
// comparator, so the first-visit tie-break is deterministic regardless of
// input ordering.
//
// Returns [ErrUnknownRoot] if rootID is not in the people collection.
func Generations(people []Person, rels []Relationship, rootID string) (map[string]int, error) {
	byID := PeopleByID(people)
	if _, ok := byID[rootID]; !ok {
		return nil, ErrUnknownRoot
	}
	idx := NewIndex(rels)
	return generationsFromIndex(byID, idx, rootID), nil
}

// GenerationsWithIndex is like [Generations] but reuses a prebuilt index.
// The pedigree engine calls this to avoid indexing the relationship list
// twice in one layout pass.
func GenerationsWithIndex(byID map[string]Person, idx *Index, rootID string) (map[string]int, error) {
	if _, ok := byID[rootID]; !ok {
		return nil, ErrUnknownRoot
	}
	return generationsFromIndex(byID, idx, rootID), nil
}

func generationsFromIndex(byID map[string]Person, idx *Index, rootID string) map[string]int {
	gens := map[string]int{rootID: 0}
	queue := []string{rootID}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		gen := gens[curr]

		// Parent edges step one generation up, child edges one down,
		// spouse and sibling edges stay level.
		var next []string
		next = appendUnvisited(next, gens, byID, idx.Parents(curr))
		next = appendUnvisited(next, gens, byID, idx.Children(curr))
		next = appendUnvisited(next, gens, byID, idx.Spouses(curr))
		next = appendUnvisited(next, gens, byID, idx.Siblings(curr))
		SortIDs(next, byID)

		// Re-check visited: the same neighbor can appear through two
		// edge kinds within one expansion.
		for _, id := range next {
			if _, ok := gens[id]; ok {
				continue
			}
			switch {
			case contains(idx.Parents(curr), id):
				gens[id] = gen - 1
			case contains(idx.Children(curr), id):
				gens[id] = gen + 1
			default:
				gens[id] = gen
			}
			queue = append(queue, id)
		}
	}
	return gens
}

// appendUnvisited filters candidate neighbor ids down to people that exist
// in the collection and have no generation yet.
func appendUnvisited(dst []string, gens map[string]int, byID map[string]Person, ids []string) []string {
	for _, id := range ids {
		if _, visited := gens[id]; visited {
			continue
		}
		if _, known := byID[id]; !known {
			continue
		}
		dst = append(dst, id)
	}
	return dst
}

// contains reports whether a sorted-or-not id slice holds id.
// Adjacency lists are short (a handful of entries), so linear scan is fine.
func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
