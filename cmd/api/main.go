package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"propertychat_backend/internal/adapters"
	"propertychat_backend/internal/alerts"
	"propertychat_backend/internal/catalog"
	"propertychat_backend/internal/chat"
	"propertychat_backend/internal/events"
	apphttp "propertychat_backend/internal/http"
	"propertychat_backend/internal/http/router"
	"propertychat_backend/internal/leadintake"
	"propertychat_backend/platform/ai/assistant"
	"propertychat_backend/platform/config"
	"propertychat_backend/platform/logger"
	"propertychat_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	assistantClient, err := initAssistant(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize assistant client", "error", err)
		panic("failed to initialize assistant client: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Alerts module subscribes to domain events (not HTTP-facing)
	alertsModule := alerts.NewModule(cfg, log)
	alertsModule.RegisterHandlers(eventBus)

	catalogModule := catalog.NewModule(cfg, log)

	// Anti-corruption layer: chat and the lead form see the catalog only
	// through this adapter.
	propertyProvider := adapters.NewCatalogProvider(catalogModule.Service())

	leadintakeModule := leadintake.NewModule(cfg, propertyProvider, eventBus, val, log)

	leadSubmitter := adapters.NewLeadSubmitter(leadintakeModule.Service())

	chatModule, err := chat.NewModule(cfg, assistantClient, propertyProvider, leadSubmitter, eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize chat module", "error", err)
		panic("failed to initialize chat module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			chatModule,
			catalogModule,
			leadintakeModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initAssistant selects the conversational assistant backend.
func initAssistant(ctx context.Context, cfg config.AssistantConfig, log *logger.Logger) (assistant.Client, error) {
	switch cfg.GetAssistantProvider() {
	case "gemini":
		client, err := assistant.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("assistant backend: gemini", "model", cfg.GetGeminiModel())
		return client, nil
	default:
		client := assistant.NewEndpointClient(cfg)
		if client == nil {
			log.Warn("ASSISTANT_URL not configured; conversational replies will fall back")
			return assistant.Unconfigured{}, nil
		}
		log.Info("assistant backend: endpoint", "url", cfg.GetAssistantURL())
		return client, nil
	}
}
