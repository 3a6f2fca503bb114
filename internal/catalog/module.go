// Package catalog provides the property listing bounded context module.
package catalog

import (
	"propertychat_backend/internal/catalog/client"
	"propertychat_backend/internal/catalog/handler"
	"propertychat_backend/internal/catalog/service"
	apphttp "propertychat_backend/internal/http"
	"propertychat_backend/platform/config"
	"propertychat_backend/platform/logger"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module.
func NewModule(cfg config.CatalogConfig, log *logger.Logger) *Module {
	feed := client.New(cfg)
	svc := service.New(feed, cfg.GetCatalogRefreshTTL(), log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/properties", m.handler.ListProperties)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
