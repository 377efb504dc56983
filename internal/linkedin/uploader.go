package linkedin

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joelkehle/patentfolio/internal/canonical"
)

// Outcome is the per-record upload result reported back to the caller. The
// caller is not responsible for interpreting or retrying these.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate-skipped"
	OutcomeFailed    Outcome = "failed"
)

// DefaultSubmitDelay is the fixed pause between successive record
// submissions, respecting the remote service's request budget.
const DefaultSubmitDelay = time.Second

type RecordResult struct {
	Number  string
	Title   string
	Outcome Outcome
	Err     error
}

type Results struct {
	Created int
	Skipped int
	Failed  int
}

type UploaderConfig struct {
	SubmitDelay time.Duration
	Journal     *Journal
}

// Uploader submits canonical records one at a time with a fixed delay
// between submissions, optionally recording each outcome in a journal.
type Uploader struct {
	client *Client
	cfg    UploaderConfig
}

func NewUploader(client *Client, cfg UploaderConfig) *Uploader {
	if cfg.SubmitDelay <= 0 {
		cfg.SubmitDelay = DefaultSubmitDelay
	}
	return &Uploader{client: client, cfg: cfg}
}

// ValidatePatents checks the contract the discovery core guarantees: every
// record has a non-empty title and number before handoff.
func ValidatePatents(patents []canonical.Patent) error {
	for i, p := range patents {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("patent %d: missing required field title", i+1)
		}
		if strings.TrimSpace(p.Number) == "" {
			return fmt.Errorf("patent %d: missing required field number", i+1)
		}
	}
	return nil
}

// Upload submits every record, tallying per-record outcomes. A failed record
// does not stop the batch; only context cancellation or a failed profile
// lookup aborts.
func (u *Uploader) Upload(ctx context.Context, patents []canonical.Patent, skipDuplicates bool) (Results, []RecordResult, error) {
	var results Results
	if err := ValidatePatents(patents); err != nil {
		return results, nil, err
	}

	profileID, err := u.client.ProfileID(ctx)
	if err != nil {
		return results, nil, err
	}

	existing := map[string]struct{}{}
	if skipDuplicates {
		existing, err = u.client.ExistingPatentNumbers(ctx, profileID)
		if err != nil {
			log.Printf("linkedin upload: listing existing patents failed, duplicates will not be skipped: %v", err)
			existing = map[string]struct{}{}
		}
	}

	records := make([]RecordResult, 0, len(patents))
	for _, p := range patents {
		if _, dup := existing[p.Number]; dup {
			records = append(records, u.record(p, OutcomeDuplicate, nil))
			results.Skipped++
			continue
		}

		if err := sleepCtx(ctx, u.cfg.SubmitDelay); err != nil {
			return results, records, err
		}

		if err := u.client.CreatePatent(ctx, profileID, p); err != nil {
			log.Printf("linkedin upload: %v", err)
			records = append(records, u.record(p, OutcomeFailed, err))
			results.Failed++
			continue
		}
		records = append(records, u.record(p, OutcomeCreated, nil))
		results.Created++
	}
	return results, records, nil
}

func (u *Uploader) record(p canonical.Patent, outcome Outcome, err error) RecordResult {
	if u.cfg.Journal != nil {
		if jerr := u.cfg.Journal.Record(p.Number, p.Title, outcome); jerr != nil {
			log.Printf("linkedin upload: journal write failed for %s: %v", p.Number, jerr)
		}
	}
	return RecordResult{Number: p.Number, Title: p.Title, Outcome: outcome, Err: err}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
