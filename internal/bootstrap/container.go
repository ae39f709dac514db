package bootstrap

import (
	"log"

	"rag-assistant-be/internal/config"
	"rag-assistant-be/internal/controller"
	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/internal/repository/implementation"
	"rag-assistant-be/internal/repository/memory"
	"rag-assistant-be/internal/service"
	"rag-assistant-be/pkg/embedding"
	"rag-assistant-be/pkg/llm/factory"
	"rag-assistant-be/pkg/loader"
	"rag-assistant-be/pkg/rag/session"
	"rag-assistant-be/pkg/rag/vectorindex"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	SessionController  controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// RagService is exposed so main.go can bind the vector index to the
	// initial session before serving requests.
	RagService service.IRagService
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

	// 3. Collaborators
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewHTTPProvider(cfg.Ai.EmbedServiceURL)
		log.Printf("[INFO] Using Embedding Provider: HTTP (%s)", cfg.Ai.EmbedServiceURL)
	}

	llmSwitcher, err := factory.NewSwitcher(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)

	// 4. Repositories and session state
	conversationRepo := implementation.NewConversationRepository(db)
	documentRepo := implementation.NewDocumentRepository(db)
	chunkRepo := implementation.NewChunkEmbeddingRepository(db)
	sessionCache := memory.NewSessionCache()

	sessionStore := session.NewStore(conversationRepo, documentRepo, sessionCache)
	vectorIndex := vectorindex.NewService(chunkRepo, embeddingProvider, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IngestTopicName, sessionCache)

	ragService := service.NewRagService(
		sessionStore,
		vectorIndex,
		loader.New(),
		llmSwitcher,
		publisherService,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		ChatController:     controller.NewChatController(ragService),
		DocumentController: controller.NewDocumentController(ragService, cfg.App.UploadDir),
		SessionController:  controller.NewSessionController(ragService),

		ConsumerService: consumerService,
		RagService:      ragService,
	}
}
