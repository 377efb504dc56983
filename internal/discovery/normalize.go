package discovery

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/joelkehle/patentfolio/internal/canonical"
)

// Normalize maps deduplicated raw records into the canonical schema. A
// malformed date is logged and reported as absent; the record itself is kept.
func Normalize(records []RawPatent) []canonical.Patent {
	out := make([]canonical.Patent, 0, len(records))
	for _, r := range records {
		out = append(out, normalizeOne(r))
	}
	return out
}

func normalizeOne(r RawPatent) canonical.Patent {
	p := canonical.Patent{
		Title:   r.Title,
		Summary: clampString(r.Abstract, canonical.MaxSummaryChars),
		Number:  r.Number,
		Status:  canonical.StatusGranted,
		Office:  canonical.Office{Name: canonical.OfficeName},
		URL:     canonical.URLForNumber(r.Number),
	}

	// One display entry per raw inventor, even when the trimmed display name
	// comes out empty; callers trim downstream.
	p.Inventors = make([]canonical.Inventor, 0, len(r.Inventors))
	for _, inv := range r.Inventors {
		name := strings.TrimSpace(inv.First + " " + inv.Last)
		p.Inventors = append(p.Inventors, canonical.Inventor{Name: name})
	}

	for _, org := range r.Assignees {
		if strings.TrimSpace(org) == "" {
			continue
		}
		p.Assignees = append(p.Assignees, canonical.Assignee{Name: org})
	}

	date, err := canonical.ParseDate(r.Date)
	if err != nil {
		log.Printf("discovery normalize: patent %s: %v", r.Number, err)
	}
	p.Date = date
	return p
}

// clampString caps s at max characters, never splitting a multi-byte rune.
func clampString(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
