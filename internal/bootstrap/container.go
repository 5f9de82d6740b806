package bootstrap

import (
	"log"
	"os"

	"scireason-be/internal/config"
	"scireason-be/internal/controller"
	"scireason-be/internal/pkg/logger"
	"scireason-be/internal/pkg/mailer"
	"scireason-be/internal/pkg/serverutils"
	"scireason-be/internal/repository/contract"
	"scireason-be/internal/repository/memory"
	"scireason-be/internal/repository/store"
	"scireason-be/internal/repository/unitofwork"
	"scireason-be/internal/service"
	"scireason-be/pkg/llm/factory"
	"scireason-be/pkg/reasoning/step"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers. AuthController is nil in local mode (no database).
	AuthController      controller.IAuthController
	SessionController   controller.ISessionController
	ReasoningController controller.IReasoningController
	CardController      controller.ICardController

	// Background consumer, run by main.
	AnalysisConsumer *service.AnalysisConsumer
	PubSub           *gochannel.GoChannel

	Logger logger.ILogger
}

// NewContainer wires the application. A nil db selects local mode: sessions
// live in memory, auth routes are not registered and sessions are unowned.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Model provider
	baseURL := cfg.Ai.OllamaBaseURL
	apiKey := ""
	if cfg.Ai.Provider == "anthropic" {
		baseURL = cfg.Ai.AnthropicBaseURL
		apiKey = cfg.Ai.AnthropicAPIKey
	}
	provider, err := factory.NewLLMProvider(cfg.Ai.Provider, cfg.Ai.Model, baseURL, apiKey)
	if err != nil {
		log.Panicf("Unable to initialize LLM provider: %v", err)
	}
	processor := step.NewProcessor(provider, log.New(os.Stdout, "[STEP] ", log.LstdFlags))

	// Storage
	var sessionStore contract.SessionStore
	var authMiddleware fiber.Handler
	var authController controller.IAuthController

	if db != nil {
		repoFactory := unitofwork.NewRepositoryFactory()
		uowFactory := func() unitofwork.UnitOfWork {
			return unitofwork.NewUnitOfWork(db, repoFactory)
		}
		sessionStore = store.NewGormSessionStore(uowFactory)
		authMiddleware = serverutils.JwtMiddleware

		emailService := mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
		authService := service.NewAuthService(uowFactory, emailService)
		authController = controller.NewAuthController(authService)
	} else {
		sysLogger.Info("Bootstrap", "No database configured, using in-memory session store", nil)
		sessionStore = memory.NewLocalSessionStore()
	}

	locks := memory.NewLockRegistry()
	analysisCache := memory.NewAnalysisCache()

	// Services
	reasoningService := service.NewReasoningService(sessionStore, processor, locks, pubSub, sysLogger)
	analysisService := service.NewAnalysisService(sessionStore, analysisCache)
	analysisConsumer := service.NewAnalysisConsumer(sessionStore, analysisCache, sysLogger)

	return &Container{
		AuthController:      authController,
		SessionController:   controller.NewSessionController(reasoningService, analysisService, authMiddleware),
		ReasoningController: controller.NewReasoningController(reasoningService),
		CardController:      controller.NewCardController(reasoningService, authMiddleware),
		AnalysisConsumer:    analysisConsumer,
		PubSub:              pubSub,
		Logger:              sysLogger,
	}
}
