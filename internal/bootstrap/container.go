package bootstrap

import (
	"log"
	"time"

	"campus-assist-be/internal/config"
	"campus-assist-be/internal/controller"
	"campus-assist-be/internal/pkg/logger"
	"campus-assist-be/internal/repository/unitofwork"
	"campus-assist-be/internal/service"
	"campus-assist-be/pkg/embedding"
	"campus-assist-be/pkg/imagegen"
	"campus-assist-be/pkg/llm/factory"
	"campus-assist-be/pkg/rag/search"

	pkgNats "campus-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController
	HealthController    controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := service.NewLLMLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	// Embedding provider per config, wrapped with an in-process cache so
	// repeated queries skip the network round trip.
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.Gemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	embeddingProvider = embedding.NewCachingProvider(embeddingProvider, 15*time.Minute)

	// Generation backends in priority order
	llmChain, err := factory.NewChain(cfg.Ai.Backends, factory.BackendConfig{
		GeminiApiKey:       cfg.Keys.Gemini,
		HuggingFaceApiKey:  cfg.Keys.HuggingFace,
		HuggingFaceBaseURL: cfg.Ai.HuggingFaceURL,
		HuggingFaceModel:   cfg.Ai.HuggingFaceModel,
		OllamaBaseURL:      cfg.Ai.OllamaBaseURL,
		OllamaModel:        cfg.Ai.OllamaChatModel,
	}, llmLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize generation backends: %v", err)
	}
	log.Printf("[INFO] Generation backends: %v", llmChain.Backends())

	// Image generation tiers
	var imageGenerator imagegen.Generator
	if cfg.Image.Enabled {
		imageGenerator = imagegen.NewFallbackGenerator(llmLogger,
			imagegen.NewDalleGenerator(cfg.Keys.OpenAI),
			imagegen.NewPollinationsGenerator(),
		)
	}

	// Retrieval
	orchestrator := search.NewOrchestrator(embeddingProvider, llmLogger)
	searchConfig := search.Config{
		Threshold: cfg.Rag.SimilarityThreshold,
		TopK:      cfg.Rag.TopK,
	}

	// 4. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
	)

	knowledgeService := service.NewKnowledgeService(
		uowFactory,
		publisherService,
		orchestrator,
		searchConfig,
	)

	chatService := service.NewChatService(
		uowFactory,
		orchestrator,
		searchConfig,
		llmChain,
		imageGenerator,
		cfg.Image.CampusContext,
		natsPub,
		llmLogger,
	)

	sysLogger.Info("bootstrap", "Container wired", map[string]interface{}{
		"embedding_provider": cfg.Ai.EmbeddingProvider,
		"backends":           llmChain.Backends(),
		"image_generation":   cfg.Image.Enabled,
	})

	// 6. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		HealthController:    controller.NewHealthController(db, llmChain),

		ConsumerService: consumerService,
	}
}
