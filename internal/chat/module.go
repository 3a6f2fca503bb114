// Package chat provides the conversation bounded context module.
package chat

import (
	"propertychat_backend/internal/chat/domain"
	"propertychat_backend/internal/chat/handler"
	"propertychat_backend/internal/chat/ports"
	"propertychat_backend/internal/chat/service"
	"propertychat_backend/internal/chat/store"
	"propertychat_backend/internal/events"
	apphttp "propertychat_backend/internal/http"
	"propertychat_backend/platform/ai/assistant"
	"propertychat_backend/platform/config"
	"propertychat_backend/platform/logger"
	"propertychat_backend/platform/validator"
)

// Module is the chat bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// SessionConfig combines the config interfaces the module needs.
type SessionConfig interface {
	config.SessionConfig
	config.ChatConfig
}

// NewModule creates and initializes the chat module. The session store is
// Redis-backed when a redis URL is configured, in-memory otherwise.
func NewModule(
	cfg SessionConfig,
	assistantClient assistant.Client,
	properties ports.PropertyProvider,
	leads ports.LeadSubmitter,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) (*Module, error) {
	var sessions store.Store
	if cfg.GetRedisURL() != "" {
		redisStore, err := store.NewRedisStore(cfg.GetRedisURL(), cfg.GetSessionTTL())
		if err != nil {
			return nil, err
		}
		sessions = redisStore
		log.Info("chat sessions stored in redis")
	} else {
		sessions = store.NewMemoryStore(cfg.GetSessionTTL())
		log.Info("chat sessions stored in memory")
	}

	bundle, err := domain.LoadBundle()
	if err != nil {
		return nil, err
	}

	svc := service.New(sessions, assistantClient, properties, leads, bundle, bus, service.NewTimerScheduler(), cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "chat"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts chat routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/chat")
	group.Use(ctx.ChatRateLimiter.RateLimit())

	group.POST("/sessions", m.handler.StartSession)
	group.GET("/sessions/:id", m.handler.GetSession)
	group.POST("/sessions/:id/messages", m.handler.SendMessage)
	group.POST("/sessions/:id/interest", m.handler.ConfirmInterest)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
