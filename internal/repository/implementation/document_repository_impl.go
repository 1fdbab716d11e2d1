package implementation

import (
	"context"

	"ai-customer-service-be/internal/model"
	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/apperrors"
	"ai-customer-service-be/pkg/corpus"
	"ai-customer-service-be/pkg/embedding"
	"ai-customer-service-be/pkg/store"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// DocumentRepositoryImpl backs the document store with a pgvector
// column. The query text is embedded on every search; similarity is
// cosine distance.
type DocumentRepositoryImpl struct {
	db       *gorm.DB
	embedder embedding.Provider
}

var _ contract.DocumentRepository = &DocumentRepositoryImpl{}

func NewDocumentRepository(db *gorm.DB, embedder embedding.Provider) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:       db,
		embedder: embedder,
	}
}

func (r *DocumentRepositoryImpl) Search(ctx context.Context, domain store.Domain, query string, k int) ([]store.Document, error) {
	if _, err := store.ParseDomain(string(domain)); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidDomain, "unknown document domain", err)
	}
	if k <= 0 {
		k = 3
	}

	vector, err := r.embedder.Generate(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "document index is unavailable", err)
	}

	var rows []struct {
		Content  string
		Source   string
		Distance float32
	}
	err = r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Select("content, source, embedding <=> ? AS distance", pgvector.NewVector(vector)).
		Where("domain = ?", string(domain)).
		Order("distance ASC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "document index is unavailable", err)
	}

	docs := make([]store.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, store.Document{
			Content: row.Content,
			Source:  row.Source,
			Domain:  domain,
			Score:   1 - row.Distance, // cosine distance -> similarity
		})
	}

	return docs, nil
}

func (r *DocumentRepositoryImpl) CreateChunk(ctx context.Context, chunk corpus.Chunk, vector []float32) error {
	m := model.DocumentChunk{
		Domain:     string(chunk.Domain),
		Source:     chunk.Source,
		Content:    chunk.Content,
		Embedding:  pgvector.NewVector(vector),
		ChunkIndex: chunk.ChunkIndex,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *DocumentRepositoryImpl) DeleteByDomain(ctx context.Context, domain store.Domain) error {
	return r.db.WithContext(ctx).
		Where("domain = ?", string(domain)).
		Delete(&model.DocumentChunk{}).Error
}
