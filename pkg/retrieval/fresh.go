package retrieval

import (
	"context"

	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/store"
)

// AlwaysFresh searches the document store on every call. No session
// state is read or written; N calls mean N searches.
type AlwaysFresh struct {
	searcher           contract.DocumentSearcher
	domain             store.Domain
	k                  int
	noResultsMessage   string
	unavailableMessage string
}

var _ Strategy = &AlwaysFresh{}

func NewAlwaysFresh(searcher contract.DocumentSearcher, domain store.Domain, k int, noResultsMessage, unavailableMessage string) *AlwaysFresh {
	if k <= 0 {
		k = 3
	}
	return &AlwaysFresh{
		searcher:           searcher,
		domain:             domain,
		k:                  k,
		noResultsMessage:   noResultsMessage,
		unavailableMessage: unavailableMessage,
	}
}

func (s *AlwaysFresh) Fetch(ctx context.Context, query string, _ map[string]string) (string, *CacheWrite, error) {
	docs, err := s.searcher.Search(ctx, s.domain, query, s.k)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindUnavailable) {
			// Store outage degrades to a fixed text; the worker still
			// has something to reason over.
			return s.unavailableMessage, nil, nil
		}
		return "", nil, err
	}
	if len(docs) == 0 {
		return s.noResultsMessage, nil, nil
	}
	return FormatDocuments(docs), nil, nil
}
