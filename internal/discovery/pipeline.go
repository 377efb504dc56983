package discovery

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Pipeline runs the discovery flow: every configured adapter is queried, raw
// records pass through the identity matcher, survivors are deduplicated
// across sources, and the remainder is normalized into canonical records.
// Adapters are invoked sequentially and are independent of each other; an
// adapter that produced nothing (including on transport failure) simply
// contributes nothing.
type Pipeline struct {
	adapters []SourceAdapter
	tracer   trace.Tracer
}

func NewPipeline(adapters ...SourceAdapter) *Pipeline {
	return &Pipeline{
		adapters: adapters,
		tracer:   otel.Tracer("patentfolio/discovery"),
	}
}

func (p *Pipeline) Run(ctx context.Context, q Query) (Result, error) {
	res := Result{Query: q, Metadata: Metadata{StartedAt: time.Now()}}
	if strings.TrimSpace(q.Inventor) == "" {
		return res, errors.New("inventor name is required")
	}

	ctx, span := p.tracer.Start(ctx, "discovery.run",
		trace.WithAttributes(attribute.String("inventor", q.Inventor)))
	defer span.End()

	matcher := NewMatcher(q)
	var matched []RawPatent
	for _, adapter := range p.adapters {
		res.Metadata.SourcesQueried = appendSource(res.Metadata.SourcesQueried, adapter.Source())
		raw := p.searchOne(ctx, adapter, q)
		res.Metadata.RecordsFetched += len(raw)
		for _, r := range raw {
			if matcher.Accept(r) {
				matched = append(matched, r)
			}
		}
	}
	res.Metadata.RecordsMatched = len(matched)

	unique := Deduplicate(matched)
	res.Metadata.DuplicatesDropped = len(matched) - len(unique)
	res.Patents = Normalize(unique)

	res.Metadata.CompletedAt = time.Now()
	res.Metadata.DurationMS = res.Metadata.CompletedAt.Sub(res.Metadata.StartedAt).Milliseconds()
	span.SetAttributes(
		attribute.Int("records.fetched", res.Metadata.RecordsFetched),
		attribute.Int("records.matched", res.Metadata.RecordsMatched),
		attribute.Int("records.unique", len(res.Patents)),
	)
	return res, nil
}

func (p *Pipeline) searchOne(ctx context.Context, adapter SourceAdapter, q Query) []RawPatent {
	ctx, span := p.tracer.Start(ctx, "discovery.adapter.search",
		trace.WithAttributes(attribute.String("source", adapter.Source())))
	defer span.End()
	raw := adapter.Search(ctx, q)
	span.SetAttributes(attribute.Int("records.raw", len(raw)))
	return raw
}

func appendSource(sources []string, s string) []string {
	if s == "" {
		return sources
	}
	for _, existing := range sources {
		if existing == s {
			return sources
		}
	}
	return append(sources, s)
}
