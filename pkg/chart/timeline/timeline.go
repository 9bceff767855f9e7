// Package timeline assigns non-overlapping horizontal rows to person
// lifespans and dated life events on a year-scaled axis.
//
// Dates become fractional years, claims are filtered and merged into
// displayed events, and events and lifespans are packed into rows with
// the greedy first-fit interval coloring, which is optimal for interval
// graphs. Generations and pedigree structure play no part here.
package timeline

import (
	"math"
	"slices"
	"time"

	"github.com/hwidmann/rootline/pkg/kin"
)

// Options controls timeline construction. Zero fields fall back to the
// [DefaultOptions] values.
type Options struct {
	Filters      []string // claim types to show; nil means DefaultFilters
	CurrentYear  int      // end year for open-ended bars; 0 means the wall-clock year
	RowGap       float64  // minimum horizontal gap between same-row intervals, in years
	YearsPerChar float64  // estimated point-event label width per character, in years
}

// DefaultOptions returns the standard timeline settings.
func DefaultOptions() Options {
	return Options{
		Filters:      DefaultFilters(),
		CurrentYear:  time.Now().Year(),
		RowGap:       1,
		YearsPerChar: 0.6,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Filters == nil {
		o.Filters = d.Filters
	}
	if o.CurrentYear == 0 {
		o.CurrentYear = d.CurrentYear
	}
	if o.RowGap <= 0 {
		o.RowGap = d.RowGap
	}
	if o.YearsPerChar <= 0 {
		o.YearsPerChar = d.YearsPerChar
	}
	return o
}

// Result is the computed timeline: row-assigned events and lifespans
// plus the decade-aligned axis range.
type Result struct {
	Events         []Event
	People         []Lifespan
	MinYear        float64
	MaxYear        float64
	EventRowCount  int
	PersonRowCount int
}

// Layout computes the timeline for the given claims and people.
//
// Records with unparseable or absent dates are skipped silently. An
// input yielding no events and no lifespans returns an empty result
// with a zero axis range, not an error.
func Layout(claims []kin.Claim, people []kin.Person, opts Options) *Result {
	opts = opts.withDefaults()
	byID := kin.PeopleByID(people)

	events := mergeCandidates(buildCandidates(claims, people, byID, opts), byID)
	lifespans := buildLifespans(people, opts)

	res := &Result{Events: events, People: lifespans}

	eventItems := make([]packItem, len(events))
	for i, e := range events {
		item := packItem{start: e.StartYear, packEnd: e.StartYear}
		if e.EndYear != nil {
			item.packEnd = *e.EndYear
		} else {
			item.packEnd += float64(len(e.Label)) * opts.YearsPerChar
		}
		eventItems[i] = item
	}
	rows, count := packRows(eventItems, opts.RowGap)
	for i := range events {
		events[i].Row = rows[i]
	}
	res.EventRowCount = count

	lifeItems := make([]packItem, len(lifespans))
	for i, l := range lifespans {
		lifeItems[i] = packItem{start: l.StartYear, packEnd: l.EndYear}
	}
	rows, count = packRows(lifeItems, opts.RowGap)
	for i := range lifespans {
		lifespans[i].Row = rows[i]
	}
	res.PersonRowCount = count

	res.MinYear, res.MaxYear = axisRange(events, lifespans)
	return res
}

// buildLifespans derives one bar per person with a parseable birth date,
// in (start, comparator) order ready for packing. A missing or
// unparseable death date leaves the bar open through the current year.
func buildLifespans(people []kin.Person, opts Options) []Lifespan {
	sorted := slices.Clone(people)
	slices.SortFunc(sorted, kin.Compare)

	var out []Lifespan
	for _, p := range sorted {
		birth, ok := ParseFractionalYear(p.BirthDate)
		if !ok {
			continue
		}
		l := Lifespan{PersonID: p.ID, Name: p.DisplayName(), StartYear: birth}
		if death, ok := ParseFractionalYear(p.DeathDate); ok {
			l.EndYear = death
		} else {
			l.EndYear = float64(opts.CurrentYear)
			l.Open = true
		}
		out = append(out, l)
	}

	slices.SortStableFunc(out, func(a, b Lifespan) int {
		switch {
		case a.StartYear < b.StartYear:
			return -1
		case a.StartYear > b.StartYear:
			return 1
		default:
			return 0
		}
	})
	return out
}

// axisRange rounds the data extent outward to whole decades, always
// leaving a forward buffer past the latest year.
func axisRange(events []Event, lifespans []Lifespan) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, e := range events {
		min = math.Min(min, e.StartYear)
		max = math.Max(max, e.StartYear)
		if e.EndYear != nil {
			max = math.Max(max, *e.EndYear)
		}
	}
	for _, l := range lifespans {
		min = math.Min(min, l.StartYear)
		max = math.Max(max, l.EndYear)
	}
	if math.IsInf(min, 1) {
		return 0, 0
	}
	return math.Floor(min/10) * 10, math.Floor(max/10)*10 + 10
}
