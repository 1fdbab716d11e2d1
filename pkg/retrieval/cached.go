package retrieval

import (
	"context"

	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/store"
)

// CacheOnce searches at most once per session per slot. The first
// query's formatted results become the session's permanent cache for
// the slot; later calls return the cached value verbatim regardless of
// the query. That staleness is intentional: billing policies do not
// change within a conversation.
//
// Degraded results (no hits, store down) are NOT cached, so the next
// turn gets another chance at a real search.
type CacheOnce struct {
	searcher           contract.DocumentSearcher
	domain             store.Domain
	k                  int
	slot               string
	noResultsMessage   string
	unavailableMessage string
}

var _ Strategy = &CacheOnce{}

func NewCacheOnce(searcher contract.DocumentSearcher, domain store.Domain, k int, slot, noResultsMessage, unavailableMessage string) *CacheOnce {
	if k <= 0 {
		k = 3
	}
	return &CacheOnce{
		searcher:           searcher,
		domain:             domain,
		k:                  k,
		slot:               slot,
		noResultsMessage:   noResultsMessage,
		unavailableMessage: unavailableMessage,
	}
}

func (s *CacheOnce) Fetch(ctx context.Context, query string, slots map[string]string) (string, *CacheWrite, error) {
	if cached, ok := slots[s.slot]; ok {
		return cached, nil, nil
	}

	docs, err := s.searcher.Search(ctx, s.domain, query, s.k)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindUnavailable) {
			return s.unavailableMessage, nil, nil
		}
		return "", nil, err
	}
	if len(docs) == 0 {
		return s.noResultsMessage, nil, nil
	}

	formatted := FormatDocuments(docs)
	return formatted, &CacheWrite{Slot: s.slot, Value: formatted}, nil
}
