package tree

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hwidmann/rootline/pkg/chart/pedigree"
	"github.com/hwidmann/rootline/pkg/errors"
	"github.com/hwidmann/rootline/pkg/kin"
)

func sampleTree() Tree {
	return Tree{
		People: []Person{
			{ID: "a", GivenName: "Anna", Surname: "Adams", BirthDate: "1950"},
			{ID: "b", GivenName: "Bob", Surname: "Baker", Living: true, BirthDate: "1980"},
		},
		Relationships: []Relationship{
			{Type: "parent_child", Person1: "a", Person2: "b"},
		},
		Claims: []Claim{
			{SubjectID: "b", Type: "residence", Value: ClaimValue{Date: "2001", IsCurrent: true}},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := sampleTree().Validate(); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Tree)
	}{
		{"empty person id", func(tr *Tree) { tr.People[0].ID = "" }},
		{"duplicate person id", func(tr *Tree) { tr.People[1].ID = "a" }},
		{"unknown relationship type", func(tr *Tree) { tr.Relationships[0].Type = "godparent" }},
		{"empty relationship endpoint", func(tr *Tree) { tr.Relationships[0].Person2 = "" }},
		{"empty claim subject", func(tr *Tree) { tr.Claims[0].SubjectID = "" }},
		{"empty claim type", func(tr *Tree) { tr.Claims[0].Type = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := sampleTree()
			tt.mutate(&tr)
			err := tr.Validate()
			if err == nil {
				t.Fatal("invalid tree accepted")
			}
			if !errors.Is(err, errors.ErrCodeInvalidTree) {
				t.Errorf("error code = %v, want INVALID_TREE", errors.GetCode(err))
			}
		})
	}
}

func TestTreeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	orig := sampleTree()

	if err := WriteTreeFile(orig, path); err != nil {
		t.Fatalf("WriteTreeFile: %v", err)
	}
	got, err := ReadTreeFile(path)
	if err != nil {
		t.Fatalf("ReadTreeFile: %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("round trip changed tree:\ngot:  %+v\nwant: %+v", got, orig)
	}
}

func TestReadTreeFileMissing(t *testing.T) {
	_, err := ReadTreeFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestKinRoundTrip(t *testing.T) {
	orig := sampleTree()
	people, rels, claims := orig.Kin()

	if people[0].DisplayName() != "Anna Adams" {
		t.Errorf("converted name = %q, want %q", people[0].DisplayName(), "Anna Adams")
	}
	if rels[0].Type != kin.RelParentChild {
		t.Errorf("converted type = %q, want %q", rels[0].Type, kin.RelParentChild)
	}
	if !claims[0].Value.IsCurrent {
		t.Error("converted claim lost IsCurrent")
	}

	back := FromKin(people, rels, claims)
	if !reflect.DeepEqual(back, orig) {
		t.Errorf("kin round trip changed tree:\ngot:  %+v\nwant: %+v", back, orig)
	}
}

func TestUnmarshalLayoutChartType(t *testing.T) {
	_, err := UnmarshalLayout([]byte(`{"chart_type":"sunburst"}`))
	if !errors.Is(err, errors.ErrCodeInvalidChartType) {
		t.Errorf("error code = %v, want INVALID_CHART_TYPE", errors.GetCode(err))
	}

	l, err := UnmarshalLayout([]byte(`{"chart_type":"fan","max_depth":2}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if l.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", l.MaxDepth)
	}
}

func TestFromPedigree(t *testing.T) {
	orig := sampleTree()
	people, rels, _ := orig.Kin()

	res, err := pedigree.Layout(people, rels, "b", pedigree.Config{})
	if err != nil {
		t.Fatalf("pedigree.Layout: %v", err)
	}
	l := FromPedigree(res)

	if l.ChartType != ChartPedigree || l.RootID != "b" {
		t.Errorf("layout header = %q/%q, want pedigree/b", l.ChartType, l.RootID)
	}
	if len(l.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(l.Nodes))
	}
	var parent *PedigreeLink
	for i := range l.Links {
		if l.Links[i].Kind == "parent" {
			parent = &l.Links[i]
		}
	}
	if parent == nil {
		t.Fatal("no parent link serialized")
	}
	if parent.Junction == nil {
		t.Error("parent link lost its junction")
	}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if !reflect.DeepEqual(back, l) {
		t.Errorf("layout round trip changed geometry")
	}
}
