package bootstrap

import (
	"context"
	"log"

	"ai-customer-service-be/internal/config"
	"ai-customer-service-be/internal/constant"
	"ai-customer-service-be/internal/controller"
	"ai-customer-service-be/internal/pkg/logger"
	"ai-customer-service-be/internal/repository/contract"
	"ai-customer-service-be/internal/repository/implementation"
	"ai-customer-service-be/internal/repository/memory"
	redisrepo "ai-customer-service-be/internal/repository/redis"
	"ai-customer-service-be/internal/service"
	"ai-customer-service-be/pkg/agent/router"
	"ai-customer-service-be/pkg/agent/supervisor"
	"ai-customer-service-be/pkg/agent/worker"
	embeddingOpenai "ai-customer-service-be/pkg/embedding/openai"
	"ai-customer-service-be/pkg/llm"
	llmOpenai "ai-customer-service-be/pkg/llm/openai"
	pktNats "ai-customer-service-be/pkg/nats"
	"ai-customer-service-be/pkg/retrieval"
	"ai-customer-service-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	AdminController controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	PublisherService service.IPublisherService
	IndexingService  service.IIndexingService

	// Shared facades
	Logger     logger.ILogger
	Supervisor *supervisor.Supervisor
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	if cfg.Ai.APIKey == "" {
		log.Fatal("[FATAL] AI_API_KEY is not set")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := embeddingOpenai.NewProvider(cfg.Ai.BaseURL, cfg.Ai.APIKey, cfg.Ai.EmbeddingModel)
	var llmProvider llm.Provider = llmOpenai.NewProvider(cfg.Ai.BaseURL, cfg.Ai.APIKey, cfg.Ai.ChatModel)
	log.Printf("[INFO] Using LLM model: %s, embedding model: %s", cfg.Ai.ChatModel, cfg.Ai.EmbeddingModel)

	// 4. Session Storage
	var sessionRepo contract.SessionRepository
	if cfg.Session.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisrepo.NewSessionRepository(rdb, cfg.Session.TTL)
		log.Printf("[INFO] Using Session Store: REDIS (ttl: %s)", cfg.Session.TTL)
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.TTL)
		log.Printf("[INFO] Using Session Store: MEMORY (ttl: %s)", cfg.Session.TTL)
	}

	// 5. NATS (best effort, chat works without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 6. Document Store & Retrieval Strategies
	docRepo := implementation.NewDocumentRepository(db, embeddingProvider)
	topK := cfg.Ai.RetrievalTopK

	staticContext := retrieval.LoadStaticContext(cfg.Ai.DocsDir, constant.ComplianceDocUnavailablePlaceholder)

	technicalStrategy := retrieval.NewAlwaysFresh(docRepo, store.DomainTechnical, topK,
		constant.TechnicalNoResultsMessage, constant.TechnicalUnavailableMessage)
	generalStrategy := retrieval.NewAlwaysFresh(docRepo, store.DomainGeneral, topK,
		constant.GeneralNoResultsMessage, constant.GeneralUnavailableMessage)
	billingStrategy := retrieval.NewCacheOnce(docRepo, store.DomainBilling, topK,
		constant.BillingPoliciesSlot, constant.BillingNoResultsMessage, constant.BillingUnavailableMessage)
	complianceStrategy := retrieval.NewStatic(staticContext)

	// 7. Workers & Router
	workers := map[store.Domain]*worker.Worker{
		store.DomainTechnical: worker.New("technical_support", store.DomainTechnical,
			constant.TechnicalWorkerInstructions, constant.TechnicalContextLabel, technicalStrategy, llmProvider),
		store.DomainBilling: worker.New("billing_support", store.DomainBilling,
			constant.BillingWorkerInstructions, constant.BillingContextLabel, billingStrategy, llmProvider),
		store.DomainCompliance: worker.New("compliance_support", store.DomainCompliance,
			constant.ComplianceWorkerInstructions, constant.ComplianceContextLabel, complianceStrategy, llmProvider),
		store.DomainGeneral: worker.New("general_support", store.DomainGeneral,
			constant.GeneralWorkerInstructions, constant.GeneralContextLabel, generalStrategy, llmProvider),
	}

	var rt router.Router
	if cfg.Ai.RouterMode == "model" {
		rt = router.NewModelAssisted(llmProvider, constant.RouterClassifierPrompt)
		log.Printf("[INFO] Using Router: MODEL-ASSISTED")
	} else {
		rt = router.NewRuleBased()
		log.Printf("[INFO] Using Router: RULE-BASED")
	}

	sup := supervisor.New(sessionRepo, workers, rt, llmProvider, sysLogger)
	if err := sup.Validate(); err != nil {
		log.Fatalf("[FATAL] Supervisor misconfigured: %v", err)
	}

	// 8. Services
	chatService := service.NewChatService(sup, sessionRepo, natsPub, sysLogger)
	publisherService := service.NewPublisherService(cfg.Indexing.TopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Indexing.TopicName, docRepo, embeddingProvider)
	indexingService := service.NewIndexingService(cfg.Ai.DocsDir, docRepo, publisherService)

	// 9. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService),
		AdminController: controller.NewAdminController(chatService, indexingService, sysLogger),

		ConsumerService:  consumerService,
		PublisherService: publisherService,
		IndexingService:  indexingService,

		Logger:     sysLogger,
		Supervisor: sup,
	}
}
