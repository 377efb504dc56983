package googlepatents

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/joelkehle/patentfolio/internal/discovery"
)

const resultsPage = `<html><body>
<article class="result">
  <h3>Dynamic CPU Frequency Scaling</h3>
  <a href="/patent/US10123456B2/en">link</a>
  <p class="abstract">A system and method for adjusting processor frequency.</p>
  <span class="inventors">Ashok Raj, John Smith; J Solo</span>
  <span class="assignee">Intel Corporation</span>
  <span class="date">2023-05-15</span>
</article>
<article class="result">
  <h4>Cache Prefetch Apparatus</h4>
  <div>Described in US10999888B1 among others.</div>
  <span class="inventor">Jane Doe</span>
</article>
<article class="result"><div>stray markup with nothing usable</div></article>
</body></html>`

func TestBuildSearchQuery(t *testing.T) {
	q := discovery.Query{Inventor: "Ashok Raj", Assignee: "Intel Corporation"}
	got := BuildSearchQuery(q)
	want := `inventor:"Ashok Raj" assignee:"Intel Corporation"`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := BuildSearchQuery(discovery.Query{Inventor: "Ashok Raj"}); got != `inventor:"Ashok Raj"` {
		t.Fatalf("unexpected query without assignee: %q", got)
	}
}

func TestParseResultsExtractsEntries(t *testing.T) {
	outcomes, err := parseResults(strings.NewReader(resultsPage))
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}

	first := outcomes[0]
	if first.skipped {
		t.Fatalf("unexpected skip: %s", first.reason)
	}
	r := first.record
	if r.Number != "US10123456B2" {
		t.Fatalf("expected number from hyperlink target, got %q", r.Number)
	}
	if r.Title != "Dynamic CPU Frequency Scaling" {
		t.Fatalf("unexpected title %q", r.Title)
	}
	if r.Abstract != "A system and method for adjusting processor frequency." {
		t.Fatalf("unexpected abstract %q", r.Abstract)
	}
	// "J Solo" has two words and is kept; a single word would be dropped.
	if len(r.Inventors) != 3 {
		t.Fatalf("expected 3 inventors, got %+v", r.Inventors)
	}
	if r.Inventors[0].First != "Ashok" || r.Inventors[0].Last != "Raj" {
		t.Fatalf("unexpected first inventor %+v", r.Inventors[0])
	}
	if len(r.Assignees) != 1 || r.Assignees[0] != "Intel Corporation" {
		t.Fatalf("unexpected assignees %+v", r.Assignees)
	}
	if r.Date != "2023-05-15" {
		t.Fatalf("unexpected date %q", r.Date)
	}
	if r.Source != discovery.SourceGooglePatents {
		t.Fatalf("unexpected source %q", r.Source)
	}

	second := outcomes[1].record
	if second.Number != "US10999888B1" {
		t.Fatalf("expected number from visible text fallback, got %q", second.Number)
	}
	if len(second.Inventors) != 1 || second.Inventors[0].First != "Jane" || second.Inventors[0].Last != "Doe" {
		t.Fatalf("unexpected inventors %+v", second.Inventors)
	}

	if !outcomes[2].skipped {
		t.Fatal("expected unusable entry to be skipped")
	}
}

func TestClampStringCountsCharacters(t *testing.T) {
	// Two-byte characters: under the cap in characters, over it in bytes.
	in := strings.Repeat("é", 1001)
	if got := clampString(in, 2000); got != in {
		t.Fatalf("expected 1001-character abstract kept whole, got %d characters", len([]rune(got)))
	}
	got := clampString(strings.Repeat("é", 2500), 2000)
	if n := len([]rune(got)); n != 2000 {
		t.Fatalf("expected 2000 characters, got %d", n)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncation split a multi-byte character")
	}
}

func TestParseResultsSingleWordInventorDropped(t *testing.T) {
	page := `<article class="result"><h3>T</h3><a href="/patent/US1234567A1/en"></a><span class="inventors">Cher</span></article>`
	outcomes, err := parseResults(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 1 || outcomes[0].skipped {
		t.Fatalf("unexpected outcomes %+v", outcomes)
	}
	if len(outcomes[0].record.Inventors) != 0 {
		t.Fatalf("expected single-word inventor token dropped, got %+v", outcomes[0].record.Inventors)
	}
}

func TestParseResultsCapsAtMaxResults(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxResults+10; i++ {
		fmt.Fprintf(&b, `<article class="result"><h3>Patent %d</h3></article>`, i)
	}
	outcomes, err := parseResults(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != MaxResults {
		t.Fatalf("expected %d outcomes, got %d", MaxResults, len(outcomes))
	}
}

func TestSearchEncodesQueryAndParses(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	out := a.Search(context.Background(), discovery.Query{Inventor: "Ashok Raj", Assignee: "Intel Corporation"})
	if gotQuery != `inventor:"Ashok Raj" assignee:"Intel Corporation"` {
		t.Fatalf("unexpected query param %q", gotQuery)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 parsed records, got %d", len(out))
	}
}

func TestSearchTransportFailureReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if out := a.Search(context.Background(), discovery.Query{Inventor: "Ashok Raj"}); len(out) != 0 {
		t.Fatalf("expected empty result on transport failure, got %d", len(out))
	}
}
