// Package patentsview implements the structured-API source adapter against
// the PatentsView patent search API.
package patentsview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joelkehle/patentfolio/internal/discovery"
)

const (
	DefaultBaseURL = "https://search.patentsview.org"
	patentPath     = "/api/v1/patent/"
	maxBodyBytes   = 2 << 20
)

type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Adapter issues one authenticated search request per query. Construction
// fails without an API key; callers treat a missing key as "run without this
// source", not as an error.
type Adapter struct {
	cfg Config
}

func New(cfg Config) (*Adapter, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("PATENTSVIEW_API_KEY not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Adapter{cfg: cfg}, nil
}

type apiInventor struct {
	First string `json:"inventor_name_first"`
	Last  string `json:"inventor_name_last"`
}

type apiAssignee struct {
	Organization string `json:"assignee_organization"`
}

type apiPatent struct {
	ID        string        `json:"patent_id"`
	Title     string        `json:"patent_title"`
	Date      string        `json:"patent_date"`
	Abstract  string        `json:"patent_abstract"`
	Inventors []apiInventor `json:"inventors"`
	Assignees []apiAssignee `json:"assignees"`
}

type apiResponse struct {
	Error     bool        `json:"error"`
	Count     int         `json:"count"`
	TotalHits int         `json:"total_hits"`
	Patents   []apiPatent `json:"patents"`
}

func (a *Adapter) Source() string { return discovery.SourcePatentsView }

// Search implements discovery.SourceAdapter. Transport failures and
// non-success statuses are logged and yield an empty result so the rest of
// the batch continues.
func (a *Adapter) Search(ctx context.Context, q discovery.Query) []discovery.RawPatent {
	records, err := a.search(ctx, q)
	if err != nil {
		log.Printf("patentsview search failed: %v", err)
		return nil
	}
	return records
}

func (a *Adapter) search(ctx context.Context, q discovery.Query) ([]discovery.RawPatent, error) {
	payload, _ := json.Marshal(buildQuery(q))
	url := strings.TrimRight(a.cfg.BaseURL, "/") + patentPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", a.cfg.APIKey)

	res, err := a.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("status code: %d body=%s", res.StatusCode, string(b))
	}

	var parsed apiResponse
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, err
	}
	if parsed.Error {
		return nil, fmt.Errorf("patentsview error flag set body=%s", string(b))
	}

	out := make([]discovery.RawPatent, 0, len(parsed.Patents))
	for _, p := range parsed.Patents {
		out = append(out, toRaw(p))
	}
	return out, nil
}

// buildQuery combines first/last-name predicates, plus an assignee predicate
// when a filter is set, into one _and query.
func buildQuery(q discovery.Query) map[string]any {
	first, last := q.TargetNames()
	conditions := []any{
		map[string]any{"inventors.inventor_name_first": first},
		map[string]any{"inventors.inventor_name_last": last},
	}
	if strings.TrimSpace(q.Assignee) != "" {
		conditions = append(conditions, map[string]any{"assignees.assignee_organization": q.Assignee})
	}
	return map[string]any{
		"q": map[string]any{"_and": conditions},
		"f": []string{
			"patent_id", "patent_title", "patent_date", "patent_abstract",
			"inventors.inventor_name_first", "inventors.inventor_name_last",
			"assignees.assignee_organization",
		},
		"o": map[string]int{"size": 100},
	}
}

func toRaw(p apiPatent) discovery.RawPatent {
	raw := discovery.RawPatent{
		Number:   strings.TrimSpace(p.ID),
		Title:    strings.TrimSpace(p.Title),
		Abstract: strings.TrimSpace(p.Abstract),
		Date:     strings.TrimSpace(p.Date),
		Source:   discovery.SourcePatentsView,
	}
	for _, inv := range p.Inventors {
		raw.Inventors = append(raw.Inventors, discovery.RawInventor{
			First: strings.TrimSpace(inv.First),
			Last:  strings.TrimSpace(inv.Last),
		})
	}
	for _, a := range p.Assignees {
		org := strings.TrimSpace(a.Organization)
		if org == "" {
			continue
		}
		raw.Assignees = append(raw.Assignees, org)
	}
	return raw
}
