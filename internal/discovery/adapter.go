package discovery

import "context"

// SourceAdapter turns a query into raw records from one data source. An
// adapter owns its own connection state, bounds every network call with a
// timeout, and never lets a transport or parse failure escape: on failure it
// logs and returns an empty slice so the rest of the batch continues.
// Source identifies the adapter in run metadata and on every record it
// emits.
type SourceAdapter interface {
	Source() string
	Search(ctx context.Context, q Query) []RawPatent
}
