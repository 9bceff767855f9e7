package kin

import "slices"

// Index holds the adjacency maps derived from a flat relationship list.
// Every chart engine starts from one of these. Building an index cannot
// fail: relationship endpoints that match no person record are retained
// as opaque keys, and duplicate or mirrored relationship rows collapse
// into a single adjacency entry.
//
// Adjacency lists are sorted by id at build time so the index itself is
// independent of relationship input order. Engines re-sort by person name
// where their ordering rules require it.
type Index struct {
	parentsByChild   map[string][]string
	childrenByParent map[string][]string
	spousesByPerson  map[string][]string // symmetric; spouse and partner rows
	siblingsByPerson map[string][]string // symmetric; explicit rows plus shared-parent pairs
}

// NewIndex builds adjacency maps from a relationship list.
// Sibling links are derived transitively: two people sharing a recorded
// parent become siblings even without an explicit sibling row.
func NewIndex(rels []Relationship) *Index {
	idx := &Index{
		parentsByChild:   make(map[string][]string),
		childrenByParent: make(map[string][]string),
		spousesByPerson:  make(map[string][]string),
		siblingsByPerson: make(map[string][]string),
	}

	seen := make(map[[3]string]bool, len(rels))
	for _, r := range rels {
		switch r.Type {
		case RelParentChild:
			key := [3]string{string(RelParentChild), r.Person1, r.Person2}
			if seen[key] {
				continue
			}
			seen[key] = true
			idx.parentsByChild[r.Person2] = append(idx.parentsByChild[r.Person2], r.Person1)
			idx.childrenByParent[r.Person1] = append(idx.childrenByParent[r.Person1], r.Person2)
		case RelSpouse, RelPartner:
			addSymmetric(idx.spousesByPerson, seen, "spouse", r.Person1, r.Person2)
		case RelSibling, RelHalfSibling:
			addSymmetric(idx.siblingsByPerson, seen, "sibling", r.Person1, r.Person2)
		}
	}

	// Derive siblings from shared parents when not explicitly recorded.
	for _, children := range idx.childrenByParent {
		for i, a := range children {
			for _, b := range children[i+1:] {
				addSymmetric(idx.siblingsByPerson, seen, "sibling", a, b)
			}
		}
	}

	for _, m := range []map[string][]string{
		idx.parentsByChild, idx.childrenByParent,
		idx.spousesByPerson, idx.siblingsByPerson,
	} {
		for _, ids := range m {
			slices.Sort(ids)
		}
	}
	return idx
}

// addSymmetric records an undirected pair in both directions, once.
// The seen key is canonicalized so (a,b) and (b,a) collapse.
func addSymmetric(m map[string][]string, seen map[[3]string]bool, kind, a, b string) {
	if a == b {
		return
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	key := [3]string{kind, lo, hi}
	if seen[key] {
		return
	}
	seen[key] = true
	m[a] = append(m[a], b)
	m[b] = append(m[b], a)
}

// Parents returns the recorded parents of a person, sorted by id.
// The returned slice is a read-only view.
func (idx *Index) Parents(id string) []string { return idx.parentsByChild[id] }

// Children returns the recorded children of a person, sorted by id.
// The returned slice is a read-only view.
func (idx *Index) Children(id string) []string { return idx.childrenByParent[id] }

// Spouses returns spouses and partners of a person, sorted by id.
// The returned slice is a read-only view.
func (idx *Index) Spouses(id string) []string { return idx.spousesByPerson[id] }

// Siblings returns siblings and half-siblings of a person (explicit or
// derived from shared parents), sorted by id. The returned slice is a
// read-only view.
func (idx *Index) Siblings(id string) []string { return idx.siblingsByPerson[id] }
