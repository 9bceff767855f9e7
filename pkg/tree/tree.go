// Package tree is the canonical serialization format for family trees
// and computed chart layouts.
//
// The JSON format is human-readable and round-trip safe: load a tree,
// lay it out, export the layout, and re-import either file identically.
// The same structs carry bson tags for document storage.
package tree

import (
	"github.com/hwidmann/rootline/pkg/errors"
	"github.com/hwidmann/rootline/pkg/kin"
)

// Tree is one family tree: people, typed relationships between them,
// and dated claims about them.
type Tree struct {
	People        []Person       `json:"people" bson:"people"`
	Relationships []Relationship `json:"relationships" bson:"relationships"`
	Claims        []Claim        `json:"claims,omitempty" bson:"claims,omitempty"`
}

// Person is one person record.
type Person struct {
	ID        string `json:"id" bson:"id"`
	GivenName string `json:"given_name,omitempty" bson:"given_name,omitempty"`
	Surname   string `json:"surname,omitempty" bson:"surname,omitempty"`
	Living    bool   `json:"living,omitempty" bson:"living,omitempty"`
	BirthDate string `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	DeathDate string `json:"death_date,omitempty" bson:"death_date,omitempty"`
}

// Relationship is one typed edge between two people. For parent_child
// rows person1 is the parent.
type Relationship struct {
	ID      string `json:"id,omitempty" bson:"id,omitempty"`
	Type    string `json:"type" bson:"type"`
	Person1 string `json:"person1" bson:"person1"`
	Person2 string `json:"person2" bson:"person2"`
}

// Claim is one dated assertion about a person.
type Claim struct {
	ID        string     `json:"id,omitempty" bson:"id,omitempty"`
	SubjectID string     `json:"subject_id" bson:"subject_id"`
	Type      string     `json:"type" bson:"type"`
	Value     ClaimValue `json:"value" bson:"value"`
}

// ClaimValue carries the dated payload of a claim.
type ClaimValue struct {
	Date        string `json:"date,omitempty" bson:"date,omitempty"`
	DateEnd     string `json:"date_end,omitempty" bson:"date_end,omitempty"`
	IsCurrent   bool   `json:"is_current,omitempty" bson:"is_current,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Validate checks structural integrity: non-empty unique person ids,
// relationships with known types and non-empty endpoints, claims with a
// subject. Endpoints referencing unknown people are allowed; the layout
// engines skip them.
func (t Tree) Validate() error {
	seen := make(map[string]bool, len(t.People))
	for i, p := range t.People {
		if p.ID == "" {
			return errors.New(errors.ErrCodeInvalidTree, "person %d has an empty id", i)
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidTree, "duplicate person id %q", p.ID)
		}
		seen[p.ID] = true
	}
	for i, r := range t.Relationships {
		if !kin.KnownRelTypes[kin.RelType(r.Type)] {
			return errors.New(errors.ErrCodeInvalidTree, "relationship %d has unknown type %q", i, r.Type)
		}
		if r.Person1 == "" || r.Person2 == "" {
			return errors.New(errors.ErrCodeInvalidTree, "relationship %d has an empty endpoint", i)
		}
	}
	for i, c := range t.Claims {
		if c.SubjectID == "" {
			return errors.New(errors.ErrCodeInvalidTree, "claim %d has an empty subject", i)
		}
		if c.Type == "" {
			return errors.New(errors.ErrCodeInvalidTree, "claim %d has an empty type", i)
		}
	}
	return nil
}

// Kin converts the tree into the engine input collections.
func (t Tree) Kin() ([]kin.Person, []kin.Relationship, []kin.Claim) {
	people := make([]kin.Person, len(t.People))
	for i, p := range t.People {
		people[i] = kin.Person{
			ID:        p.ID,
			GivenName: p.GivenName,
			Surname:   p.Surname,
			Living:    p.Living,
			BirthDate: p.BirthDate,
			DeathDate: p.DeathDate,
		}
	}
	rels := make([]kin.Relationship, len(t.Relationships))
	for i, r := range t.Relationships {
		rels[i] = kin.Relationship{ID: r.ID, Type: kin.RelType(r.Type), Person1: r.Person1, Person2: r.Person2}
	}
	claims := make([]kin.Claim, len(t.Claims))
	for i, c := range t.Claims {
		claims[i] = kin.Claim{
			ID:        c.ID,
			SubjectID: c.SubjectID,
			Type:      c.Type,
			Value: kin.ClaimValue{
				Date:        c.Value.Date,
				DateEnd:     c.Value.DateEnd,
				IsCurrent:   c.Value.IsCurrent,
				Description: c.Value.Description,
			},
		}
	}
	return people, rels, claims
}

// FromKin builds a serializable tree from engine collections.
func FromKin(people []kin.Person, rels []kin.Relationship, claims []kin.Claim) Tree {
	t := Tree{
		People:        make([]Person, len(people)),
		Relationships: make([]Relationship, len(rels)),
	}
	for i, p := range people {
		t.People[i] = Person{
			ID:        p.ID,
			GivenName: p.GivenName,
			Surname:   p.Surname,
			Living:    p.Living,
			BirthDate: p.BirthDate,
			DeathDate: p.DeathDate,
		}
	}
	for i, r := range rels {
		t.Relationships[i] = Relationship{ID: r.ID, Type: string(r.Type), Person1: r.Person1, Person2: r.Person2}
	}
	if len(claims) > 0 {
		t.Claims = make([]Claim, len(claims))
		for i, c := range claims {
			t.Claims[i] = Claim{
				ID:        c.ID,
				SubjectID: c.SubjectID,
				Type:      c.Type,
				Value: ClaimValue{
					Date:        c.Value.Date,
					DateEnd:     c.Value.DateEnd,
					IsCurrent:   c.Value.IsCurrent,
					Description: c.Value.Description,
				},
			}
		}
	}
	return t
}
