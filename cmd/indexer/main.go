package main

import (
	"context"
	"log"

	"ai-customer-service-be/internal/config"
	"ai-customer-service-be/internal/repository/implementation"
	"ai-customer-service-be/internal/service"
	"ai-customer-service-be/pkg/database"
	embeddingOpenai "ai-customer-service-be/pkg/embedding/openai"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
)

// Reindexes the retrieval corpus: every .txt/.md file under the docs
// directory is published onto the indexing topic, and the consumer
// chunks, embeds and stores it. Publishing blocks until the consumer
// acks, so the process exits only when the index is complete.
func main() {
	cfg := config.Load()

	if cfg.Ai.APIKey == "" {
		log.Fatal("[FATAL] AI_API_KEY is not set")
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	embeddingProvider := embeddingOpenai.NewProvider(cfg.Ai.BaseURL, cfg.Ai.APIKey, cfg.Ai.EmbeddingModel)
	docRepo := implementation.NewDocumentRepository(gormDB, embeddingProvider)

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		watermill.NewStdLogger(false, false),
	)

	publisherService := service.NewPublisherService(cfg.Indexing.TopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Indexing.TopicName, docRepo, embeddingProvider)
	indexingService := service.NewIndexingService(cfg.Ai.DocsDir, docRepo, publisherService)

	ctx := context.Background()
	if err := consumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}

	color.Cyan("Indexing corpus from %s", cfg.Ai.DocsDir)

	for _, domain := range service.IndexedDomains {
		n, err := indexingService.ReindexDomain(ctx, domain)
		if err != nil {
			color.Red("  %s: %v", domain, err)
			continue
		}
		color.Green("  %s: %d files indexed", domain, n)
	}

	color.Cyan("Done.")
}
