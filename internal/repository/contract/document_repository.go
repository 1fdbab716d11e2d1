package contract

import (
	"context"

	"ai-customer-service-be/pkg/corpus"
	"ai-customer-service-be/pkg/store"
)

// DocumentSearcher is the read side of the document store: nearest
// neighbour search over one domain's chunks.
//
// Results come back ordered by descending similarity, at most k of
// them. Zero results is a valid empty slice, not an error; an
// unreachable index surfaces as an Unavailable error.
type DocumentSearcher interface {
	Search(ctx context.Context, domain store.Domain, query string, k int) ([]store.Document, error)
}

// DocumentRepository adds the write side used by the indexer.
type DocumentRepository interface {
	DocumentSearcher

	// CreateChunk persists one embedded corpus chunk.
	CreateChunk(ctx context.Context, chunk corpus.Chunk, vector []float32) error

	// DeleteByDomain clears a domain before re-indexing.
	DeleteByDomain(ctx context.Context, domain store.Domain) error
}
