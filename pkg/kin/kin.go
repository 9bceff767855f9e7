// Package kin models a family tree as a flat set of people and typed
// relationships, and derives the graph structure the chart engines need.
//
// A family graph is not a strict tree: re-marriages, recorded half-siblings
// and shared ancestors all introduce cycles. The package therefore never
// builds a recursive object graph; traversal state lives in explicit
// id-keyed maps so revisits are O(1) lookups and recursion depth is bounded
// by generation count rather than path count.
package kin

import (
	"cmp"
	"errors"
	"slices"
)

// ErrUnknownRoot is returned by [Generations] when the requested root id is
// not present in the people collection. Callers must not proceed to layout.
var ErrUnknownRoot = errors.New("root person not in people collection")

// RelType identifies the kind of relationship between two people.
type RelType string

const (
	// RelParentChild links a parent (Person1) to a child (Person2).
	RelParentChild RelType = "parent_child"
	// RelSpouse links two married people.
	RelSpouse RelType = "spouse"
	// RelPartner links two unmarried partners. Treated like RelSpouse
	// for layout purposes.
	RelPartner RelType = "partner"
	// RelSibling links two full siblings.
	RelSibling RelType = "sibling"
	// RelHalfSibling links two half siblings. Treated like RelSibling
	// for layout purposes.
	RelHalfSibling RelType = "half_sibling"
)

// KnownRelTypes is the set of relationship types the engines understand.
var KnownRelTypes = map[RelType]bool{
	RelParentChild: true,
	RelSpouse:      true,
	RelPartner:     true,
	RelSibling:     true,
	RelHalfSibling: true,
}

// Person is an immutable layout input. The engines never mutate people;
// they only read identity, name parts and the derived date fields.
type Person struct {
	ID        string
	GivenName string
	Surname   string
	Living    bool
	BirthDate string // free-form date string, parsed by the timeline engine
	DeathDate string
}

// DisplayName returns "Given Surname" with missing parts omitted.
func (p Person) DisplayName() string {
	switch {
	case p.GivenName == "":
		return p.Surname
	case p.Surname == "":
		return p.GivenName
	default:
		return p.GivenName + " " + p.Surname
	}
}

// Relationship is a typed, ordered pair of person ids.
// For RelParentChild, Person1 is the parent and Person2 the child.
type Relationship struct {
	ID      string
	Type    RelType
	Person1 string
	Person2 string
}

// ClaimValue carries the dated payload of a life-event claim.
type ClaimValue struct {
	Date        string
	DateEnd     string
	IsCurrent   bool
	Description string
}

// Claim records a life event about one person (the subject).
type Claim struct {
	ID        string
	SubjectID string
	Type      string // e.g. "marriage", "residence", "occupation"
	Value     ClaimValue
}

// Compare orders people lexicographically by (surname, given name, id).
// Every engine uses this single comparator for deterministic tie-breaking,
// so identical inputs produce identical geometry regardless of input
// array ordering.
func Compare(a, b Person) int {
	if c := cmp.Compare(a.Surname, b.Surname); c != 0 {
		return c
	}
	if c := cmp.Compare(a.GivenName, b.GivenName); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// PeopleByID builds an id lookup map from a people slice.
// Later duplicates of the same id are ignored.
func PeopleByID(people []Person) map[string]Person {
	m := make(map[string]Person, len(people))
	for _, p := range people {
		if _, ok := m[p.ID]; !ok {
			m[p.ID] = p
		}
	}
	return m
}

// SortIDs sorts person ids using [Compare]. Ids without a person record
// sort after all known people, ordered by raw id, keeping the comparator
// total. The slice is sorted in place and returned for convenience.
func SortIDs(ids []string, byID map[string]Person) []string {
	slices.SortFunc(ids, func(a, b string) int {
		pa, okA := byID[a]
		pb, okB := byID[b]
		switch {
		case okA && okB:
			return Compare(pa, pb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	})
	return ids
}
