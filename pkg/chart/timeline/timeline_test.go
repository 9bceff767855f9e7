package timeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/hwidmann/rootline/pkg/kin"
)

func person(id, given, surname string) kin.Person {
	return kin.Person{ID: id, GivenName: given, Surname: surname}
}

func claim(subject, typ, date string) kin.Claim {
	return kin.Claim{SubjectID: subject, Type: typ, Value: kin.ClaimValue{Date: date}}
}

func TestParseFractionalYear(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1990", 1990, true},
		{"1990-01", 1990, true},
		{"1990-06", 1990 + 5.0/12, true},
		{"1990-06-15", 1990 + 5.0/12 + 14.0/365, true},
		{"1990-01-01", 1990, true},
		{" 2001 ", 2001, true},
		{"", 0, false},
		{"unknown", 0, false},
		{"1990-13", 0, false},
		{"1990-00", 0, false},
		{"1990-06-32", 0, false},
		{"1990-xx", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFractionalYear(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseFractionalYear(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseFractionalYear(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFractionalYearScenario(t *testing.T) {
	got, ok := ParseFractionalYear("1990-06")
	if !ok {
		t.Fatal("ParseFractionalYear(1990-06) not ok")
	}
	if math.Abs(got-1990.417) > 0.001 {
		t.Errorf("got %v, want ≈1990.417", got)
	}
}

func TestLayoutMergesSharedEvent(t *testing.T) {
	people := []kin.Person{
		person("x", "Xan", "Xu"),
		person("y", "Yara", "Young"),
	}
	claims := []kin.Claim{
		claim("x", "marriage", "1920"),
		claim("y", "marriage", "1920"),
	}

	res := Layout(claims, people, Options{Filters: []string{"marriage"}})

	if len(res.Events) != 1 {
		t.Fatalf("got %d events, want 1 merged", len(res.Events))
	}
	e := res.Events[0]
	if e.MergedCount != 2 {
		t.Errorf("MergedCount = %d, want 2", e.MergedCount)
	}
	if !reflect.DeepEqual(e.PersonIDs, []string{"x", "y"}) {
		t.Errorf("PersonIDs = %v, want [x y]", e.PersonIDs)
	}
	if e.Label != "Marriage" {
		t.Errorf("Label = %q, want %q", e.Label, "Marriage")
	}
}

func TestLayoutMergeOrderIndependent(t *testing.T) {
	people := []kin.Person{
		person("x", "Xan", "Xu"),
		person("y", "Yara", "Young"),
		person("z", "Zoe", "Zimmer"),
	}
	claims := []kin.Claim{
		claim("x", "marriage", "1920"),
		claim("y", "marriage", "1920"),
		claim("z", "marriage", "1955"),
		claim("z", "residence", "1920"),
	}
	opts := Options{Filters: []string{"marriage", "residence"}}

	first := Layout(claims, people, opts)

	rev := make([]kin.Claim, len(claims))
	for i, c := range claims {
		rev[len(claims)-1-i] = c
	}
	second := Layout(rev, people, opts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ under claim permutation:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestLayoutNoMergeAcrossDates(t *testing.T) {
	people := []kin.Person{person("x", "Xan", "Xu"), person("y", "Yara", "Young")}
	claims := []kin.Claim{
		claim("x", "marriage", "1920"),
		claim("y", "marriage", "1921"),
	}

	res := Layout(claims, people, Options{Filters: []string{"marriage"}})
	if len(res.Events) != 2 {
		t.Fatalf("got %d events, want 2 distinct", len(res.Events))
	}
}

func TestLayoutLivingLifespanRows(t *testing.T) {
	people := []kin.Person{
		{ID: "a", GivenName: "Anna", Surname: "Adams", Living: true, BirthDate: "1900"},
		{ID: "b", GivenName: "Bob", Surname: "Baker", Living: true, BirthDate: "1901"},
		{ID: "c", GivenName: "Cleo", Surname: "Cole", Living: true, BirthDate: "1905"},
	}

	res := Layout(nil, people, Options{Filters: []string{}, CurrentYear: 2026})

	if len(res.People) != 3 {
		t.Fatalf("got %d lifespans, want 3", len(res.People))
	}
	// All three run to the present, so they mutually overlap.
	if res.PersonRowCount != 3 {
		t.Errorf("PersonRowCount = %d, want 3", res.PersonRowCount)
	}
	for _, l := range res.People {
		if !l.Open || l.EndYear != 2026 {
			t.Errorf("lifespan %s = %+v, want open bar ending 2026", l.PersonID, l)
		}
	}
}

func TestLayoutRowsNeverOverlap(t *testing.T) {
	people := []kin.Person{
		{ID: "a", GivenName: "Anna", Surname: "Adams", BirthDate: "1900", DeathDate: "1960"},
		{ID: "b", GivenName: "Bob", Surname: "Baker", BirthDate: "1910", DeathDate: "1930"},
		{ID: "c", GivenName: "Cleo", Surname: "Cole", BirthDate: "1935", DeathDate: "1990"},
		{ID: "d", GivenName: "Dora", Surname: "Dean", BirthDate: "1965", DeathDate: "2000"},
	}
	gap := 1.0

	res := Layout(nil, people, Options{Filters: []string{}, RowGap: gap})

	for i, a := range res.People {
		for _, b := range res.People[i+1:] {
			if a.Row != b.Row {
				continue
			}
			if a.EndYear+gap > b.StartYear && b.EndYear+gap > a.StartYear {
				t.Errorf("row %d holds overlapping bars %s and %s", a.Row, a.PersonID, b.PersonID)
			}
		}
	}
	// b fits after nobody (overlaps a), c reuses b's row, d reuses b/c row.
	if res.PersonRowCount != 2 {
		t.Errorf("PersonRowCount = %d, want 2", res.PersonRowCount)
	}
}

func TestPackRowsCliqueOptimal(t *testing.T) {
	// Three intervals overlap at year 25, nothing else forces a 4th row.
	items := []packItem{
		{start: 0, packEnd: 30},
		{start: 10, packEnd: 40},
		{start: 20, packEnd: 50},
		{start: 45, packEnd: 60},
	}

	rows, count := packRows(items, 1)
	if count != 3 {
		t.Errorf("row count = %d, want clique number 3", count)
	}
	if rows[3] != rows[0] {
		t.Errorf("late interval on row %d, want reuse of row %d", rows[3], rows[0])
	}
}

func TestPackRowsBoundaryTouchSharesRow(t *testing.T) {
	// end + gap == start is non-overlapping, so both fit on one row.
	items := []packItem{
		{start: 0, packEnd: 10},
		{start: 11, packEnd: 20},
	}

	rows, count := packRows(items, 1)
	if count != 1 {
		t.Errorf("row count = %d, want 1 when end+gap == start", count)
	}
	if rows[0] != rows[1] {
		t.Errorf("rows = %v, want both on one row", rows)
	}
}

func TestMergeGeometryOrderIndependent(t *testing.T) {
	// Two starts in the same 3-decimal bucket but unequal below it: the
	// merged event must take the group minimum either way around.
	byID := map[string]kin.Person{
		"x": person("x", "Xena", "Xu"),
		"y": person("y", "Yann", "Young"),
	}
	a := candidate{typ: "marriage", start: 1920.0004, personID: "x", personName: "Xena Xu"}
	b := candidate{typ: "marriage", start: 1920.0001, personID: "y", personName: "Yann Young"}

	forward := mergeCandidates([]candidate{a, b}, byID)
	reverse := mergeCandidates([]candidate{b, a}, byID)
	if len(forward) != 1 || len(reverse) != 1 {
		t.Fatalf("merged groups = %d and %d, want 1 each", len(forward), len(reverse))
	}
	if forward[0].StartYear != reverse[0].StartYear {
		t.Errorf("StartYear %v vs %v, want identical under permutation", forward[0].StartYear, reverse[0].StartYear)
	}
	if forward[0].StartYear != 1920.0001 {
		t.Errorf("StartYear = %v, want group minimum 1920.0001", forward[0].StartYear)
	}
}

func TestLayoutPointEventLabelWidth(t *testing.T) {
	people := []kin.Person{person("x", "Xan", "Xu"), person("y", "Yara", "Young")}
	claims := []kin.Claim{
		claim("x", "occupation", "1950"),
		claim("y", "occupation", "1953"),
	}

	// "Occupation" is 10 chars; at 2 years per char the first label runs
	// past the second marker, pushing it to a new row.
	res := Layout(claims, people, Options{Filters: []string{"occupation"}, RowGap: 0.5, YearsPerChar: 2})
	if res.EventRowCount != 2 {
		t.Errorf("EventRowCount = %d, want 2 with wide labels", res.EventRowCount)
	}

	// Narrow labels leave room, so one row suffices.
	res = Layout(claims, people, Options{Filters: []string{"occupation"}, RowGap: 0.5, YearsPerChar: 0.1})
	if res.EventRowCount != 1 {
		t.Errorf("EventRowCount = %d, want 1 with narrow labels", res.EventRowCount)
	}
}

func TestLayoutSynthesizesBirthDeath(t *testing.T) {
	people := []kin.Person{
		{ID: "a", GivenName: "Anna", Surname: "Adams", BirthDate: "1900", DeathDate: "1980"},
	}
	// A recorded birth claim must not duplicate the synthesized event.
	claims := []kin.Claim{claim("a", TypeBirth, "1900")}

	res := Layout(claims, people, Options{Filters: []string{TypeBirth, TypeDeath}})

	if len(res.Events) != 2 {
		t.Fatalf("got %d events, want birth and death", len(res.Events))
	}
	if res.Events[0].Type != TypeBirth || res.Events[0].StartYear != 1900 || res.Events[0].MergedCount != 1 {
		t.Errorf("first event = %+v, want single birth at 1900", res.Events[0])
	}
	if res.Events[1].Type != TypeDeath || res.Events[1].StartYear != 1980 {
		t.Errorf("second event = %+v, want death at 1980", res.Events[1])
	}
}

func TestLayoutSkipsUnparseable(t *testing.T) {
	people := []kin.Person{
		{ID: "a", GivenName: "Anna", Surname: "Adams", BirthDate: "circa 1900"},
		person("x", "Xan", "Xu"),
	}
	claims := []kin.Claim{
		claim("x", "residence", "sometime"),
		claim("x", "residence", "1940"),
		claim("ghost", "residence", "1941"),
	}

	res := Layout(claims, people, Options{Filters: []string{"residence"}})

	if len(res.Events) != 1 || res.Events[0].StartYear != 1940 {
		t.Errorf("events = %+v, want only the 1940 residence", res.Events)
	}
	if len(res.People) != 0 {
		t.Errorf("lifespans = %+v, want none for unparseable births", res.People)
	}
}

func TestLayoutRangedEvents(t *testing.T) {
	people := []kin.Person{person("x", "Xan", "Xu")}
	claims := []kin.Claim{
		{SubjectID: "x", Type: "residence", Value: kin.ClaimValue{Date: "1950", DateEnd: "1960"}},
		{SubjectID: "x", Type: "occupation", Value: kin.ClaimValue{Date: "1970", IsCurrent: true}},
	}

	res := Layout(claims, people, Options{Filters: []string{"residence", "occupation"}, CurrentYear: 2026})

	if len(res.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(res.Events))
	}
	if res.Events[0].EndYear == nil || *res.Events[0].EndYear != 1960 {
		t.Errorf("residence end = %v, want 1960", res.Events[0].EndYear)
	}
	if res.Events[1].EndYear == nil || *res.Events[1].EndYear != 2026 {
		t.Errorf("current occupation end = %v, want 2026", res.Events[1].EndYear)
	}
}

func TestLayoutAxisRange(t *testing.T) {
	people := []kin.Person{
		{ID: "a", GivenName: "Anna", Surname: "Adams", BirthDate: "1903", DeathDate: "1998"},
	}

	res := Layout(nil, people, Options{Filters: []string{}})

	if res.MinYear != 1900 {
		t.Errorf("MinYear = %v, want 1900", res.MinYear)
	}
	if res.MaxYear != 2000 {
		t.Errorf("MaxYear = %v, want 2000 with forward buffer", res.MaxYear)
	}
}

func TestLayoutEmpty(t *testing.T) {
	res := Layout(nil, nil, Options{})

	if len(res.Events) != 0 || len(res.People) != 0 {
		t.Fatalf("got %d events, %d lifespans, want empty", len(res.Events), len(res.People))
	}
	if res.MinYear != 0 || res.MaxYear != 0 {
		t.Errorf("axis [%v, %v], want [0, 0]", res.MinYear, res.MaxYear)
	}
	if res.EventRowCount != 0 || res.PersonRowCount != 0 {
		t.Errorf("row counts %d/%d, want 0/0", res.EventRowCount, res.PersonRowCount)
	}
}
