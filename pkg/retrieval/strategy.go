package retrieval

import (
	"context"
	"fmt"
	"strings"

	"ai-customer-service-be/pkg/store"
)

// CacheWrite is a deferred session-cache update. Strategies never touch
// the session themselves; the supervisor applies the write atomically
// alongside the transcript update.
type CacheWrite struct {
	Slot  string
	Value string
}

// Strategy produces the retrieval context for a worker turn.
//
// slots is a read-only view of the session's cache slots. The returned
// string is always non-empty: empty results and store outages degrade
// to fixed user-facing texts rather than errors.
type Strategy interface {
	Fetch(ctx context.Context, query string, slots map[string]string) (string, *CacheWrite, error)
}

// FormatDocuments renders search results in the canonical
// "Source {i}: {source}" layout, one block per document, blank-line
// separated.
func FormatDocuments(docs []store.Document) string {
	blocks := make([]string, 0, len(docs))
	for i, doc := range docs {
		blocks = append(blocks, fmt.Sprintf("Source %d: %s\n%s", i+1, doc.Source, doc.Content))
	}
	return strings.Join(blocks, "\n\n")
}
