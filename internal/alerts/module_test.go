package alerts

import (
	"context"
	"testing"

	"propertychat_backend/internal/events"
	"propertychat_backend/platform/logger"
)

type alertsConfig struct {
	gatewayURL string
	gatewayKey string
	recipient  string
}

func (c alertsConfig) GetAlertGatewayURL() string { return c.gatewayURL }
func (c alertsConfig) GetAlertGatewayKey() string { return c.gatewayKey }
func (c alertsConfig) GetAlertRecipient() string  { return c.recipient }

func (c alertsConfig) IsAlertsEnabled() bool {
	return c.gatewayURL != "" && c.recipient != ""
}

func TestNewModuleDisabledWithoutGatewayAndRecipient(t *testing.T) {
	log := logger.New("test")

	cases := []struct {
		name string
		cfg  alertsConfig
	}{
		{"no gateway", alertsConfig{recipient: "+919876543210"}},
		{"no recipient", alertsConfig{gatewayURL: "http://gateway.local"}},
		{"neither", alertsConfig{}},
	}

	for _, tc := range cases {
		m := NewModule(tc.cfg, log)
		if m.gateway != nil {
			t.Errorf("%s: expected no gateway client", tc.name)
		}

		// Delivery on a disabled module is a silent no-op.
		err := m.Handle(context.Background(), events.LeadSubmitted{
			BaseEvent: events.NewBaseEvent(),
			Name:      "Rohan",
			Phone:     "+919876543210",
		})
		if err != nil {
			t.Errorf("%s: Handle: %v", tc.name, err)
		}
	}
}

func TestNewModuleEnabled(t *testing.T) {
	cfg := alertsConfig{
		gatewayURL: "http://gateway.local",
		gatewayKey: "user:pass",
		recipient:  "+919876543210",
	}

	m := NewModule(cfg, logger.New("test"))
	if m.gateway == nil {
		t.Fatal("expected a gateway client")
	}
	if m.recipient != cfg.recipient {
		t.Fatalf("recipient = %q, want %q", m.recipient, cfg.recipient)
	}
}
