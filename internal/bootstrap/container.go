package bootstrap

import (
	"log"
	"time"

	"commerce-agent-be/internal/config"
	"commerce-agent-be/internal/controller"
	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/internal/repository/implementation"
	"commerce-agent-be/internal/service"
	"commerce-agent-be/pkg/embedding"
	"commerce-agent-be/pkg/language"
	"commerce-agent-be/pkg/llm/factory"
	"commerce-agent-be/pkg/memory"
	"commerce-agent-be/pkg/rag"
	"commerce-agent-be/pkg/rag/intent"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController
	MemoryController    controller.IMemoryController
	LanguageController  controller.ILanguageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(
			cfg.Ai.OpenAIAPIKey,
			cfg.Ai.OpenAIBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmBaseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Conversation Core
	sessionStore := memory.NewStore(cfg.Memory.MaxHistoryLength)
	detector := language.NewDetector(cfg.Language.DefaultLanguage)
	classifier := intent.NewClassifier(llmProvider, sysLogger)

	knowledgeRepo := implementation.NewKnowledgeRepository(db)

	publisherService := service.NewPublisherService(pubSub, cfg.App.IngestTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		knowledgeRepo,
		embeddingProvider,
		cfg,
		sysLogger,
	)

	knowledgeService := service.NewKnowledgeService(
		knowledgeRepo,
		publisherService,
		embeddingProvider,
		cfg,
		sysLogger,
	)
	coordinator := rag.NewCoordinator(knowledgeService, sysLogger)

	agentService := service.NewAgentService(
		sessionStore,
		detector,
		classifier,
		coordinator,
		llmProvider,
		cfg,
		sysLogger,
	)
	memoryService := service.NewMemoryService(sessionStore)
	languageService := service.NewLanguageService(detector)

	// 5. Session TTL sweeper
	go func() {
		ticker := time.NewTicker(cfg.Memory.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if removed := sessionStore.SweepExpired(cfg.Memory.SessionTTL); removed > 0 {
				sysLogger.Info("SessionSweeper", "Expired sessions removed", map[string]interface{}{
					"count": removed,
				})
			}
		}
	}()

	// 6. Controllers
	return &Container{
		ChatController:      controller.NewChatController(agentService, memoryService, languageService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		MemoryController:    controller.NewMemoryController(memoryService),
		LanguageController:  controller.NewLanguageController(languageService),

		ConsumerService: consumerService,
	}
}
