package discovery

import "testing"

func rawRecord() RawPatent {
	return RawPatent{
		Number:    "10123456",
		Title:     "Dynamic CPU Frequency Scaling",
		Inventors: []RawInventor{{First: "Ashok", Last: "Raj"}},
		Assignees: []string{"Intel Corporation"},
		Source:    SourcePatentsView,
	}
}

func TestMatcherAcceptsExactName(t *testing.T) {
	m := NewMatcher(Query{Inventor: "Ashok Raj"})
	if !m.Accept(rawRecord()) {
		t.Fatal("expected exact name match to be accepted")
	}
}

func TestMatcherCaseInsensitive(t *testing.T) {
	m := NewMatcher(Query{Inventor: "ASHOK RAJ"})
	r := rawRecord()
	r.Inventors = []RawInventor{{First: "ashok", Last: "raj"}}
	if !m.Accept(r) {
		t.Fatal("expected case-insensitive match to be accepted")
	}
}

func TestMatcherRejectsLastNameMismatch(t *testing.T) {
	m := NewMatcher(Query{Inventor: "Ashok Raj"})
	r := rawRecord()
	r.Inventors = []RawInventor{{First: "ashok", Last: "smith"}}
	if m.Accept(r) {
		t.Fatal("expected last-name mismatch to be rejected")
	}
}

func TestMatcherNoFuzzyFirstName(t *testing.T) {
	m := NewMatcher(Query{Inventor: "Ashok Raj"})
	r := rawRecord()
	r.Inventors = []RawInventor{{First: "A.", Last: "Raj"}}
	if m.Accept(r) {
		t.Fatal("expected initial-only first name to be rejected")
	}
}

func TestMatcherAssigneeSubstring(t *testing.T) {
	m := NewMatcher(Query{Inventor: "Ashok Raj", Assignee: "intel"})
	if !m.Accept(rawRecord()) {
		t.Fatal("expected case-insensitive assignee substring to be accepted")
	}
}

func TestMatcherAssigneeFilterRejects(t *testing.T) {
	m := NewMatcher(Query{Inventor: "Ashok Raj", Assignee: "AMD"})
	if m.Accept(rawRecord()) {
		t.Fatal("expected assignee mismatch to be rejected")
	}
}

func TestMatcherNoAssigneeFilterVacuouslyMatches(t *testing.T) {
	m := NewMatcher(Query{Inventor: "Ashok Raj"})
	r := rawRecord()
	r.Assignees = nil
	if !m.Accept(r) {
		t.Fatal("expected record without assignees to be accepted when no filter is set")
	}
}

func TestMatcherRejectsIncompleteRecord(t *testing.T) {
	m := NewMatcher(Query{Inventor: "Ashok Raj"})
	noTitle := rawRecord()
	noTitle.Title = "  "
	if m.Accept(noTitle) {
		t.Fatal("expected record without title to be rejected")
	}
	noNumber := rawRecord()
	noNumber.Number = ""
	if m.Accept(noNumber) {
		t.Fatal("expected record without number to be rejected")
	}
}

func TestSingleTokenNameUsedAsBoth(t *testing.T) {
	q := Query{Inventor: "Madonna"}
	first, last := q.TargetNames()
	if first != "Madonna" || last != "Madonna" {
		t.Fatalf("expected single token for both names, got %q / %q", first, last)
	}
}
