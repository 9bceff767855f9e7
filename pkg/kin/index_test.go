package kin

import (
	"slices"
	"testing"
)

func TestNewIndex_ParentChild(t *testing.T) {
	idx := NewIndex([]Relationship{
		{ID: "r1", Type: RelParentChild, Person1: "mom", Person2: "kid"},
		{ID: "r2", Type: RelParentChild, Person1: "dad", Person2: "kid"},
	})

	if got := idx.Parents("kid"); !slices.Equal(got, []string{"dad", "mom"}) {
		t.Errorf("Parents(kid) = %v, want [dad mom]", got)
	}
	if got := idx.Children("mom"); !slices.Equal(got, []string{"kid"}) {
		t.Errorf("Children(mom) = %v, want [kid]", got)
	}
	if got := idx.Parents("mom"); got != nil {
		t.Errorf("Parents(mom) = %v, want nil", got)
	}
}

func TestNewIndex_SymmetricSpouses(t *testing.T) {
	idx := NewIndex([]Relationship{
		{ID: "r1", Type: RelSpouse, Person1: "a", Person2: "b"},
		{ID: "r2", Type: RelPartner, Person1: "a", Person2: "c"},
	})

	if got := idx.Spouses("a"); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Spouses(a) = %v, want [b c]", got)
	}
	if got := idx.Spouses("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Spouses(b) = %v, want [a]", got)
	}
}

func TestNewIndex_MirroredRowsCollapse(t *testing.T) {
	// The same marriage recorded from both sides must not duplicate.
	idx := NewIndex([]Relationship{
		{ID: "r1", Type: RelSpouse, Person1: "a", Person2: "b"},
		{ID: "r2", Type: RelSpouse, Person1: "b", Person2: "a"},
	})

	if got := idx.Spouses("a"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Spouses(a) = %v, want [b]", got)
	}
}

func TestNewIndex_DerivedSiblings(t *testing.T) {
	// No explicit sibling row; both children share parent p.
	idx := NewIndex([]Relationship{
		{ID: "r1", Type: RelParentChild, Person1: "p", Person2: "a"},
		{ID: "r2", Type: RelParentChild, Person1: "p", Person2: "b"},
	})

	if got := idx.Siblings("a"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Siblings(a) = %v, want [b]", got)
	}
	if got := idx.Siblings("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Siblings(b) = %v, want [a]", got)
	}
}

func TestNewIndex_ExplicitAndDerivedSiblingsCollapse(t *testing.T) {
	idx := NewIndex([]Relationship{
		{ID: "r1", Type: RelParentChild, Person1: "p", Person2: "a"},
		{ID: "r2", Type: RelParentChild, Person1: "p", Person2: "b"},
		{ID: "r3", Type: RelHalfSibling, Person1: "a", Person2: "b"},
	})

	if got := idx.Siblings("a"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Siblings(a) = %v, want [b]", got)
	}
}

func TestNewIndex_UnknownIDsRetained(t *testing.T) {
	// Endpoints need not match any person record; the index keeps them
	// as opaque keys.
	idx := NewIndex([]Relationship{
		{ID: "r1", Type: RelParentChild, Person1: "ghost", Person2: "kid"},
	})

	if got := idx.Parents("kid"); !slices.Equal(got, []string{"ghost"}) {
		t.Errorf("Parents(kid) = %v, want [ghost]", got)
	}
}

func TestNewIndex_OrderIndependent(t *testing.T) {
	rels := []Relationship{
		{ID: "r1", Type: RelParentChild, Person1: "p", Person2: "a"},
		{ID: "r2", Type: RelParentChild, Person1: "p", Person2: "b"},
		{ID: "r3", Type: RelSpouse, Person1: "p", Person2: "q"},
	}
	reversed := []Relationship{rels[2], rels[1], rels[0]}

	a, b := NewIndex(rels), NewIndex(reversed)
	for _, id := range []string{"p", "q", "a", "b"} {
		if !slices.Equal(a.Children(id), b.Children(id)) {
			t.Errorf("Children(%s) differ across input orders: %v vs %v", id, a.Children(id), b.Children(id))
		}
		if !slices.Equal(a.Siblings(id), b.Siblings(id)) {
			t.Errorf("Siblings(%s) differ across input orders: %v vs %v", id, a.Siblings(id), b.Siblings(id))
		}
	}
}
