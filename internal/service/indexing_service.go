package service

import (
	"context"

	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/corpus"
	"ai-customer-service-be/pkg/store"
)

// IndexedDomains are the domains whose corpus lives in the vector
// store. Compliance documents are preloaded at startup instead of
// being indexed.
var IndexedDomains = []store.Domain{
	store.DomainTechnical,
	store.DomainBilling,
	store.DomainGeneral,
}

type IIndexingService interface {
	ReindexDomain(ctx context.Context, domain store.Domain) (int, error)
	ReindexAll(ctx context.Context) (map[store.Domain]int, error)
}

type indexingService struct {
	docsDir   string
	docRepo   contract.DocumentRepository
	publisher IPublisherService
}

func NewIndexingService(docsDir string, docRepo contract.DocumentRepository, publisher IPublisherService) IIndexingService {
	return &indexingService{
		docsDir:   docsDir,
		docRepo:   docRepo,
		publisher: publisher,
	}
}

// ReindexDomain clears a domain and publishes its corpus files onto the
// indexing topic. Returns the number of files published; the consumer
// does the chunking and embedding.
func (s *indexingService) ReindexDomain(ctx context.Context, domain store.Domain) (int, error) {
	if _, err := store.ParseDomain(string(domain)); err != nil {
		return 0, apperrors.Wrap(apperrors.KindInvalidDomain, "unknown corpus domain", err)
	}

	files, err := corpus.LoadDomainFiles(s.docsDir, domain)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindUnavailable, "corpus directory is unreadable", err)
	}

	if err := s.docRepo.DeleteByDomain(ctx, domain); err != nil {
		return 0, apperrors.Wrap(apperrors.KindUnavailable, "document index is unavailable", err)
	}

	for _, f := range files {
		if err := s.publisher.PublishIndexDocument(ctx, string(f.Domain), f.Source, f.Content); err != nil {
			return 0, err
		}
	}

	return len(files), nil
}

func (s *indexingService) ReindexAll(ctx context.Context) (map[store.Domain]int, error) {
	counts := make(map[store.Domain]int, len(IndexedDomains))
	for _, domain := range IndexedDomains {
		n, err := s.ReindexDomain(ctx, domain)
		if err != nil {
			return nil, err
		}
		counts[domain] = n
	}
	return counts, nil
}
