// Package canonical defines the source-agnostic patent schema the rest of the
// pipeline normalizes into, matching the field names the profile upload API
// expects.
package canonical

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxSummaryChars is the summary cap imposed by the profile service.
	MaxSummaryChars = 2000

	StatusGranted = "granted"
	OfficeName    = "United States Patent and Trademark Office (USPTO)"

	patentURLPrefix = "https://patents.google.com/patent/US"
)

type Office struct {
	Name string `json:"name"`
}

type Inventor struct {
	Name string `json:"name"`
}

type Assignee struct {
	Name string `json:"name"`
}

// Date holds the parsed issue date. Fields are pointers so a partial date
// ("2023" or "2023-05") serializes without fabricated zero segments, and an
// absent date serializes as an empty object.
type Date struct {
	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
	Day   *int `json:"day,omitempty"`
}

func (d Date) IsZero() bool {
	return d.Year == nil && d.Month == nil && d.Day == nil
}

// String renders the date as YYYY, YYYY-MM, or YYYY-MM-DD depending on which
// segments are present. Month/day without a year render nothing.
func (d Date) String() string {
	if d.Year == nil {
		return ""
	}
	switch {
	case d.Month != nil && d.Day != nil:
		return fmt.Sprintf("%d-%02d-%02d", *d.Year, *d.Month, *d.Day)
	case d.Month != nil:
		return fmt.Sprintf("%d-%02d", *d.Year, *d.Month)
	default:
		return strconv.Itoa(*d.Year)
	}
}

type Patent struct {
	Title     string     `json:"title"`
	Summary   string     `json:"summary,omitempty"`
	Number    string     `json:"number"`
	Status    string     `json:"status"`
	Office    Office     `json:"office"`
	Inventors []Inventor `json:"inventors"`
	Assignees []Assignee `json:"assignees,omitempty"`
	Date      Date       `json:"date"`
	URL       string     `json:"url,omitempty"`
}

// URLForNumber derives the Google Patents link for a patent number, or ""
// when the number is absent.
func URLForNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	return patentURLPrefix + number
}

// ParseDate parses a source date of the form "YYYY[-MM[-DD]]". Missing
// segments leave the corresponding field nil. A non-numeric segment is an
// error and the zero Date is returned; callers keep the record and report the
// date as absent.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	segments := strings.Split(s, "-")
	if len(segments) > 3 {
		segments = segments[:3]
	}
	vals := make([]int, len(segments))
	for i, seg := range segments {
		n, err := strconv.Atoi(strings.TrimSpace(seg))
		if err != nil {
			return Date{}, fmt.Errorf("malformed date %q: segment %d is not numeric", s, i+1)
		}
		vals[i] = n
	}
	var d Date
	d.Year = &vals[0]
	if len(vals) > 1 {
		d.Month = &vals[1]
	}
	if len(vals) > 2 {
		d.Day = &vals[2]
	}
	return d, nil
}
