package discovery

// Deduplicate collapses records sharing a patent number, keeping the first
// occurrence in input order. A record without a number is never treated as a
// duplicate and never keys later records, so it is always retained.
func Deduplicate(records []RawPatent) []RawPatent {
	seen := make(map[string]struct{}, len(records))
	out := make([]RawPatent, 0, len(records))
	for _, r := range records {
		if r.Number == "" {
			out = append(out, r)
			continue
		}
		if _, ok := seen[r.Number]; ok {
			continue
		}
		seen[r.Number] = struct{}{}
		out = append(out, r)
	}
	return out
}
