// Package googlepatents implements the scraped-page source adapter against
// the Google Patents search results page. Scraping is brittle by
// construction: selector drift shows up as empty results, not as an error.
package googlepatents

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/joelkehle/patentfolio/internal/discovery"
)

const (
	DefaultBaseURL = "https://patents.google.com"

	// MaxResults bounds how many result entries one search parses.
	MaxResults = 20

	maxAbstractChars = 2000
)

var (
	patentHrefRe = regexp.MustCompile(`patent/([A-Z]{2}\d+[A-Z]\d*)`)
	patentTextRe = regexp.MustCompile(`\bUS\d{7,10}[A-Z]\d*\b`)
)

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Adapter struct {
	cfg Config
}

func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Adapter{cfg: cfg}
}

// BuildSearchQuery constructs the search expression for the results page:
// inventor:"<name>" optionally combined with assignee:"<org>".
func BuildSearchQuery(q discovery.Query) string {
	expr := fmt.Sprintf("inventor:%q", q.Inventor)
	if strings.TrimSpace(q.Assignee) != "" {
		expr += fmt.Sprintf(" assignee:%q", q.Assignee)
	}
	return expr
}

// entryOutcome is the per-entry extraction result. A skipped entry carries
// the reason so tests and logs can see why a result was dropped; one bad
// entry never aborts the whole search.
type entryOutcome struct {
	record  discovery.RawPatent
	skipped bool
	reason  string
}

func (a *Adapter) Source() string { return discovery.SourceGooglePatents }

// Search implements discovery.SourceAdapter.
func (a *Adapter) Search(ctx context.Context, q discovery.Query) []discovery.RawPatent {
	searchURL := strings.TrimRight(a.cfg.BaseURL, "/") + "/?q=" + url.QueryEscape(BuildSearchQuery(q))
	body, err := a.fetch(ctx, searchURL)
	if err != nil {
		log.Printf("googlepatents search failed url=%s: %v", searchURL, err)
		return nil
	}
	defer body.Close()

	outcomes, err := parseResults(body)
	if err != nil {
		log.Printf("googlepatents parse failed url=%s: %v", searchURL, err)
		return nil
	}
	records := make([]discovery.RawPatent, 0, len(outcomes))
	for _, o := range outcomes {
		if o.skipped {
			log.Printf("googlepatents entry skipped: %s", o.reason)
			continue
		}
		records = append(records, o.record)
	}
	if len(records) == 0 {
		log.Printf("googlepatents no results parsed; manual search: %s", searchURL)
	}
	return records
}

func (a *Adapter) fetch(ctx context.Context, searchURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	res, err := a.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("status code: %d", res.StatusCode)
	}
	return res.Body, nil
}

// parseResults extracts up to MaxResults entries from a results document.
func parseResults(r io.Reader) ([]entryOutcome, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	results := doc.Find("search-result-item, article.result")
	if results.Length() == 0 {
		results = doc.Find("div[data-result], .search-result-item")
	}

	var outcomes []entryOutcome
	results.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= MaxResults {
			return false
		}
		outcomes = append(outcomes, extractEntry(sel))
		return true
	})
	return outcomes, nil
}

func extractEntry(sel *goquery.Selection) entryOutcome {
	title := strings.TrimSpace(sel.Find("h3, h4, .title").First().Text())
	number := extractNumber(sel)
	if title == "" && number == "" {
		return entryOutcome{skipped: true, reason: "entry has neither title nor patent number"}
	}

	record := discovery.RawPatent{
		Number:   number,
		Title:    title,
		Abstract: clampString(strings.TrimSpace(sel.Find(".abstract, .description, p").First().Text()), maxAbstractChars),
		Date:     strings.TrimSpace(sel.Find(".date, .publication-date").First().Text()),
		Source:   discovery.SourceGooglePatents,
	}
	record.Inventors = parseInventorText(sel.Find(".inventor, .inventors").First().Text())
	if org := strings.TrimSpace(sel.Find(".assignee, .applicant").First().Text()); org != "" {
		record.Assignees = []string{org}
	}
	return entryOutcome{record: record}
}

// extractNumber pulls a patent number first from the entry's first hyperlink
// target, then falls back to scanning the entry's visible text.
func extractNumber(sel *goquery.Selection) string {
	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		if m := patentHrefRe.FindStringSubmatch(href); m != nil {
			return m[1]
		}
	}
	return patentTextRe.FindString(sel.Text())
}

// parseInventorText splits visible inventor text on comma/semicolon and keeps
// only tokens with at least two space-separated words: first word is the
// first name, last word is the last name.
func parseInventorText(text string) []discovery.RawInventor {
	var inventors []discovery.RawInventor
	for _, token := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ';' }) {
		words := strings.Fields(token)
		if len(words) < 2 {
			continue
		}
		inventors = append(inventors, discovery.RawInventor{
			First: words[0],
			Last:  words[len(words)-1],
		})
	}
	return inventors
}

// clampString caps s at max characters, never splitting a multi-byte rune.
func clampString(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
