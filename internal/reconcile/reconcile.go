// Package reconcile merges a freshly scraped batch into a previously
// persisted record set. The merge is a pure fold over two in-memory slices;
// it performs no I/O and cannot fail.
package reconcile

import "jobko-engine/internal/domain"

// Merge combines existing and incoming postings under last-write-wins:
// records are considered in concatenation order (existing first), and for
// each key only the last record survives, so an incoming record always
// supersedes a persisted one with the same key. Output preserves first-seen
// key order, which keeps the stored file stable across runs.
func Merge(existing, incoming []domain.Posting, key domain.KeyFunc) []domain.Posting {
	order := make([]string, 0, len(existing)+len(incoming))
	last := make(map[string]domain.Posting, len(existing)+len(incoming))

	take := func(p domain.Posting) {
		k := key(p)
		if _, seen := last[k]; !seen {
			order = append(order, k)
		}
		last[k] = p
	}
	for _, p := range existing {
		take(p)
	}
	for _, p := range incoming {
		take(p)
	}

	out := make([]domain.Posting, 0, len(order))
	for _, k := range order {
		out = append(out, last[k])
	}
	return out
}
