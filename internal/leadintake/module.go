// Package leadintake provides the lead intake bounded context module.
package leadintake

import (
	"propertychat_backend/internal/events"
	apphttp "propertychat_backend/internal/http"
	"propertychat_backend/internal/leadintake/client"
	"propertychat_backend/internal/leadintake/handler"
	"propertychat_backend/internal/leadintake/service"
	"propertychat_backend/platform/config"
	"propertychat_backend/platform/logger"
	"propertychat_backend/platform/validator"
)

// Module is the lead intake bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the lead intake module.
func NewModule(cfg config.IntakeConfig, digest handler.DigestSource, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	sender := client.New(cfg)
	svc := service.New(sender, bus, log)
	h := handler.New(svc, digest, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leadintake"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead intake routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/leads", m.handler.SubmitLead)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
