package alerts

import (
	"context"
	"fmt"

	"propertychat_backend/internal/events"
	"propertychat_backend/platform/config"
	"propertychat_backend/platform/logger"
)

// Module reacts to lead events. It exposes no HTTP routes.
type Module struct {
	gateway   *GatewayClient
	recipient string
	log       *logger.Logger
}

// NewModule creates the alerts module. Without a gateway URL and a
// recipient the module still subscribes but delivers nothing.
func NewModule(cfg config.AlertsConfig, log *logger.Logger) *Module {
	if !cfg.IsAlertsEnabled() {
		log.Warn("sales alerts disabled, gateway or recipient not configured")
		return &Module{log: log}
	}

	return &Module{
		gateway:   NewGatewayClient(cfg, log),
		recipient: cfg.GetAlertRecipient(),
		log:       log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "alerts"
}

// RegisterHandlers subscribes to the lead events this module reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadSubmitted{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadSubmitted:
		return m.notifyLeadCaptured(ctx, e)
	default:
		return nil
	}
}

func (m *Module) notifyLeadCaptured(ctx context.Context, e events.LeadSubmitted) error {
	if m.gateway == nil || m.recipient == "" {
		return nil
	}

	message := fmt.Sprintf("New lead captured: %s (%s)", e.Name, e.Phone)
	if e.PropertyTitle != "" {
		message += fmt.Sprintf(" for %s", e.PropertyTitle)
	}

	if err := m.gateway.SendMessage(ctx, m.recipient, message); err != nil {
		m.log.Warn("sales alert delivery failed", "error", err)
		return err
	}
	return nil
}

// Compile-time check that Module implements events.Handler
var _ events.Handler = (*Module)(nil)
