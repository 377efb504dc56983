package discovery

import "strings"

// Matcher decides whether a raw record belongs to the queried inventor.
// Matching is deliberately exact on first+last name (case-insensitive) with
// no fuzzy or partial variants, to avoid crediting patents from a different
// person with a similar name.
type Matcher struct {
	targetFirst string
	targetLast  string
	assignee    string
}

func NewMatcher(q Query) *Matcher {
	first, last := q.TargetNames()
	return &Matcher{
		targetFirst: strings.ToLower(first),
		targetLast:  strings.ToLower(last),
		assignee:    strings.ToLower(strings.TrimSpace(q.Assignee)),
	}
}

// Accept reports whether the record survives identity matching. Acceptance
// requires a usable record (non-empty title and number), an exact
// case-insensitive first+last inventor match, and, when an assignee filter is
// set, at least one assignee organization containing the filter as a
// case-insensitive substring.
func (m *Matcher) Accept(r RawPatent) bool {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Number) == "" {
		return false
	}
	if !m.inventorMatches(r) {
		return false
	}
	return m.assigneeMatches(r)
}

func (m *Matcher) inventorMatches(r RawPatent) bool {
	for _, inv := range r.Inventors {
		first := strings.ToLower(strings.TrimSpace(inv.First))
		last := strings.ToLower(strings.TrimSpace(inv.Last))
		if first == m.targetFirst && last == m.targetLast {
			return true
		}
	}
	return false
}

func (m *Matcher) assigneeMatches(r RawPatent) bool {
	if m.assignee == "" {
		return true
	}
	for _, org := range r.Assignees {
		if strings.Contains(strings.ToLower(org), m.assignee) {
			return true
		}
	}
	return false
}
