package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-customer-service-be/internal/dto"
	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/pkg/corpus"
	"ai-customer-service-be/pkg/embedding"
	"ai-customer-service-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	docRepo           contract.DocumentRepository
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	docRepo contract.DocumentRepository,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		docRepo:           docRepo,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	domain, err := store.ParseDomain(payload.Domain)
	if err != nil {
		log.Printf("[ERROR] Unknown domain %q for %s: %v", payload.Domain, payload.Source, err)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Indexing document %s (domain: %s, length: %d)", payload.Source, domain, len(payload.Content))

	chunks := corpus.SplitText(payload.Content, corpus.DefaultChunkSize, corpus.DefaultChunkOverlap)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	for i, chunk := range chunks {
		vector, err := cs.embeddingProvider.Generate(ctx, chunk)
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of %s: %v", i, payload.Source, err)
			msg.Nack() // Nack for retriable errors
			return
		}

		err = cs.docRepo.CreateChunk(ctx, corpus.Chunk{
			Domain:     domain,
			Source:     payload.Source,
			Content:    chunk,
			ChunkIndex: i,
		}, vector)
		if err != nil {
			log.Printf("[ERROR] Failed to store chunk %d of %s: %v", i, payload.Source, err)
			msg.Nack()
			return
		}
	}

	log.Printf("[SUCCESS] Document indexed: %d chunks for %s", len(chunks), payload.Source)
	msg.Ack()
}
