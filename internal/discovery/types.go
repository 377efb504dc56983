// Package discovery implements the inventor patent discovery pipeline:
// querying the configured source adapters, strict identity matching,
// cross-source deduplication, and normalization into the canonical schema.
package discovery

import (
	"strings"
	"time"

	"github.com/joelkehle/patentfolio/internal/canonical"
)

const (
	SourcePatentsView   = "patentsview"
	SourceGooglePatents = "google_patents"
)

// Query is the immutable (inventor, optional assignee) pair driving one
// discovery run.
type Query struct {
	Inventor string `json:"inventor"`
	Assignee string `json:"assignee,omitempty"`
}

// TargetNames decomposes the inventor name: first whitespace token is the
// first name, last token is the last name, and a single-token name serves as
// both. Empty input yields empty targets.
func (q Query) TargetNames() (first, last string) {
	parts := strings.Fields(q.Inventor)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], parts[len(parts)-1]
}

// RawInventor is a source-native inventor entry.
type RawInventor struct {
	First string
	Last  string
}

// RawPatent is one source-native result. Produced by exactly one adapter and
// never mutated afterward.
type RawPatent struct {
	Number    string
	Title     string
	Abstract  string
	Inventors []RawInventor
	Assignees []string
	Date      string
	Source    string
}

type Metadata struct {
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
	DurationMS        int64     `json:"duration_ms"`
	SourcesQueried    []string  `json:"sources_queried"`
	RecordsFetched    int       `json:"records_fetched"`
	RecordsMatched    int       `json:"records_matched"`
	DuplicatesDropped int       `json:"duplicates_dropped"`
}

// Result is the outcome of one discovery run. Patents is the canonical set;
// an empty set after all adapters ran is a valid "no patents found" outcome,
// not an error.
type Result struct {
	Query    Query              `json:"query"`
	Patents  []canonical.Patent `json:"patents"`
	Metadata Metadata           `json:"metadata"`
}
