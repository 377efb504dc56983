// Package portfolio derives aggregate statistics over a canonical patent
// set: timeline, patent-number range, technology-area counts, and innovation
// rate.
package portfolio

import (
	"strings"

	"github.com/joelkehle/patentfolio/internal/canonical"
)

// Category is one ordered keyword bucket. Buckets are evaluated in
// declaration order and a patent is credited to at most one: the first whose
// keyword appears in its lowercased title.
type Category struct {
	Label    string
	Keywords []string
}

// Categories is the fixed technology-area table. Order matters.
var Categories = []Category{
	{"Memory & Cache Management", []string{"memory", "cache", "buffer", "storage", "data transfer"}},
	{"Virtualization & I/O", []string{"virtualization", "i/o", "input/output", "translation", "address", "paging"}},
	{"Error Handling & Machine Check", []string{"error", "machine check", "fault", "recovery", "exception"}},
	{"Processor Performance & Interrupts", []string{"processor", "performance", "interrupt", "cpu", "frequency"}},
	{"Network Interfaces", []string{"network", "interface", "communication", "cluster", "protocol"}},
	{"System Management", []string{"system", "management", "firmware", "platform", "hardware"}},
}

type CategoryCount struct {
	Label string
	Count int
}

// Summary is a read-only view over one canonical set. MinYear/MaxYear are
// zero when no record carries a year. PatentsPerYear is present only when at
// least two distinct years are observed.
type Summary struct {
	TotalPatents   int
	MinYear        int
	MaxYear        int
	EarliestNumber string
	LatestNumber   string
	Categories     []CategoryCount
	PatentsPerYear *float64
}

// Analyze computes the portfolio summary. Pure function: the input set is
// not modified.
func Analyze(patents []canonical.Patent) Summary {
	s := Summary{TotalPatents: len(patents)}

	distinctYears := map[int]struct{}{}
	for _, p := range patents {
		if p.Date.Year != nil {
			y := *p.Date.Year
			distinctYears[y] = struct{}{}
			if s.MinYear == 0 || y < s.MinYear {
				s.MinYear = y
			}
			if y > s.MaxYear {
				s.MaxYear = y
			}
		}
		if p.Number != "" {
			if s.EarliestNumber == "" || numberLess(p.Number, s.EarliestNumber) {
				s.EarliestNumber = p.Number
			}
			if s.LatestNumber == "" || numberLess(s.LatestNumber, p.Number) {
				s.LatestNumber = p.Number
			}
		}
	}

	s.Categories = countCategories(patents)

	if len(distinctYears) >= 2 {
		rate := float64(len(patents)) / float64(s.MaxYear-s.MinYear+1)
		s.PatentsPerYear = &rate
	}
	return s
}

func countCategories(patents []canonical.Patent) []CategoryCount {
	counts := make([]CategoryCount, len(Categories))
	for i, c := range Categories {
		counts[i].Label = c.Label
	}
	for _, p := range patents {
		title := strings.ToLower(p.Title)
		for i, c := range Categories {
			if containsAny(title, c.Keywords) {
				counts[i].Count++
				break
			}
		}
	}
	return counts
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// numberLess compares patent numbers by the integer formed from their digit
// characters. Comparison is done on the digit strings (length, then
// lexicographic) so arbitrarily long identifiers cannot overflow. Strict
// ordering means ties keep the first-encountered number.
func numberLess(a, b string) bool {
	da, db := digitsOnly(a), digitsOnly(b)
	if len(da) != len(db) {
		return len(da) < len(db)
	}
	return da < db
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	out := strings.TrimLeft(b.String(), "0")
	if out == "" && b.Len() > 0 {
		return "0"
	}
	return out
}
