package timeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hwidmann/rootline/pkg/kin"
)

// Claim types with synthesized handling. Birth and death events come
// from each person's derived date fields, never from claims of the same
// type, so a tree that records both does not show duplicates.
const (
	TypeBirth = "birth"
	TypeDeath = "death"
)

// DefaultFilters returns the claim types shown when the caller does not
// restrict them.
func DefaultFilters() []string {
	return []string{
		TypeBirth,
		TypeDeath,
		"marriage",
		"divorce",
		"residence",
		"occupation",
		"education",
		"military_service",
	}
}

// Event is one displayed timeline entry, possibly merged from several
// claims describing the same real-world event.
type Event struct {
	Type        string
	Label       string
	StartYear   float64
	EndYear     *float64 // nil for a point event
	PersonIDs   []string
	PersonNames []string
	MergedCount int
	Row         int
}

// Lifespan is one person's bar from birth to death or to the present.
type Lifespan struct {
	PersonID  string
	Name      string
	StartYear float64
	EndYear   float64
	Open      bool // no death date: the bar runs to the current year
	Row       int
}

// candidate is one pre-merge event derived from a claim or a person's
// birth/death fields.
type candidate struct {
	typ        string
	start      float64
	end        *float64
	personID   string
	personName string
}

// buildCandidates filters claims to the active types, parses their
// dates, and synthesizes birth/death candidates from person fields.
// Claims with unparseable or absent start dates, unknown subjects, or
// inactive types are skipped silently.
func buildCandidates(claims []kin.Claim, people []kin.Person, byID map[string]kin.Person, opts Options) []candidate {
	active := make(map[string]bool, len(opts.Filters))
	for _, f := range opts.Filters {
		active[f] = true
	}

	var cands []candidate
	for _, c := range claims {
		if !active[c.Type] || c.Type == TypeBirth || c.Type == TypeDeath {
			continue
		}
		subject, ok := byID[c.SubjectID]
		if !ok {
			continue
		}
		start, ok := ParseFractionalYear(c.Value.Date)
		if !ok {
			continue
		}

		var end *float64
		if e, ok := ParseFractionalYear(c.Value.DateEnd); ok {
			end = &e
		} else if c.Value.IsCurrent {
			now := float64(opts.CurrentYear)
			end = &now
		}

		cands = append(cands, candidate{
			typ:        c.Type,
			start:      start,
			end:        end,
			personID:   c.SubjectID,
			personName: subject.DisplayName(),
		})
	}

	sorted := slices.Clone(people)
	slices.SortFunc(sorted, kin.Compare)
	for _, p := range sorted {
		if active[TypeBirth] {
			if y, ok := ParseFractionalYear(p.BirthDate); ok {
				cands = append(cands, candidate{typ: TypeBirth, start: y, personID: p.ID, personName: p.DisplayName()})
			}
		}
		if active[TypeDeath] {
			if y, ok := ParseFractionalYear(p.DeathDate); ok {
				cands = append(cands, candidate{typ: TypeDeath, start: y, personID: p.ID, personName: p.DisplayName()})
			}
		}
	}
	return cands
}

// mergeCandidates collapses candidates that describe the same event:
// same type, same start and end years at 3-decimal precision. The merged
// entry carries the union of participants in comparator order and the
// minimum start/end of its group, so neither membership nor geometry
// depends on input order.
func mergeCandidates(cands []candidate, byID map[string]kin.Person) []Event {
	groups := make(map[string][]candidate)
	var keys []string
	for _, c := range cands {
		k := mergeKey(c)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], c)
	}

	events := make([]Event, 0, len(keys))
	for _, k := range keys {
		group := groups[k]
		start := group[0].start
		end := group[0].end
		ids := make([]string, 0, len(group))
		for _, c := range group {
			if c.start < start {
				start = c.start
			}
			if end != nil && *c.end < *end {
				end = c.end
			}
			if !slices.Contains(ids, c.personID) {
				ids = append(ids, c.personID)
			}
		}
		kin.SortIDs(ids, byID)
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = byID[id].DisplayName()
		}
		events = append(events, Event{
			Type:        group[0].typ,
			Label:       formatType(group[0].typ),
			StartYear:   start,
			EndYear:     end,
			PersonIDs:   ids,
			PersonNames: names,
			MergedCount: len(group),
		})
	}

	slices.SortFunc(events, func(a, b Event) int {
		if a.StartYear != b.StartYear {
			if a.StartYear < b.StartYear {
				return -1
			}
			return 1
		}
		if a.Type != b.Type {
			return strings.Compare(a.Type, b.Type)
		}
		if c := strings.Compare(endKey(a.EndYear), endKey(b.EndYear)); c != 0 {
			return c
		}
		return strings.Compare(a.PersonIDs[0], b.PersonIDs[0])
	})
	return events
}

// mergeKey buckets candidates at 3-decimal year precision; point events
// use a distinct marker so they never merge with ranged ones.
func mergeKey(c candidate) string {
	return fmt.Sprintf("%s|%.3f|%s", c.typ, c.start, endKey(c.end))
}

func endKey(end *float64) string {
	if end == nil {
		return "null"
	}
	return fmt.Sprintf("%.3f", *end)
}

// formatType turns a claim type like "military_service" into a display
// label like "Military Service".
func formatType(typ string) string {
	words := strings.Split(typ, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
