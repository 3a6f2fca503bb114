// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// AssistantConfig provides settings for the conversational assistant client.
type AssistantConfig interface {
	GetAssistantProvider() string
	GetAssistantURL() string
	GetAssistantAPIKey() string
	GetAssistantTimeout() time.Duration
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

// CatalogConfig provides settings for the property catalog client.
type CatalogConfig interface {
	GetCatalogURL() string
	GetCatalogTimeout() time.Duration
	GetCatalogRefreshTTL() time.Duration
}

// IntakeConfig provides settings for the lead intake client.
type IntakeConfig interface {
	GetIntakeURL() string
	GetIntakeAPIKey() string
	GetIntakeTimeout() time.Duration
}

// SessionConfig provides settings for conversation session storage.
type SessionConfig interface {
	GetRedisURL() string
	GetSessionTTL() time.Duration
}

// ChatConfig provides pacing and language settings for the controller.
type ChatConfig interface {
	GetDefaultLanguage() string
	GetFirstPromptDelay() time.Duration
	GetNextPromptDelay() time.Duration
}

// AlertsConfig provides settings for sales alert delivery.
type AlertsConfig interface {
	GetAlertGatewayURL() string
	GetAlertGatewayKey() string
	GetAlertRecipient() string
	IsAlertsEnabled() bool
}

// =============================================================================
// Config Implementation
// =============================================================================

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	AssistantProvider string
	AssistantURL      string
	AssistantAPIKey   string
	AssistantTimeout  time.Duration
	GeminiAPIKey      string
	GeminiModel       string

	CatalogURL        string
	CatalogTimeout    time.Duration
	CatalogRefreshTTL time.Duration

	IntakeURL     string
	IntakeAPIKey  string
	IntakeTimeout time.Duration

	RedisURL   string
	SessionTTL time.Duration

	DefaultLanguage  string
	FirstPromptDelay time.Duration
	NextPromptDelay  time.Duration

	AlertGatewayURL string
	AlertGatewayKey string
	AlertRecipient  string
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		AssistantProvider: getEnv("ASSISTANT_PROVIDER", "endpoint"),
		AssistantURL:      getEnv("ASSISTANT_URL", ""),
		AssistantAPIKey:   getEnv("ASSISTANT_API_KEY", ""),
		AssistantTimeout:  mustDuration(getEnv("ASSISTANT_TIMEOUT", "20s")),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		CatalogURL:        getEnv("CATALOG_URL", ""),
		CatalogTimeout:    mustDuration(getEnv("CATALOG_TIMEOUT", "10s")),
		CatalogRefreshTTL: mustDuration(getEnv("CATALOG_REFRESH_TTL", "5m")),

		IntakeURL:     getEnv("LEAD_INTAKE_URL", ""),
		IntakeAPIKey:  getEnv("LEAD_INTAKE_API_KEY", ""),
		IntakeTimeout: mustDuration(getEnv("LEAD_INTAKE_TIMEOUT", "15s")),

		RedisURL:   getEnv("REDIS_URL", ""),
		SessionTTL: mustDuration(getEnv("SESSION_TTL", "1h")),

		DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "en"),
		FirstPromptDelay: mustDuration(getEnv("FIRST_PROMPT_DELAY", "1s")),
		NextPromptDelay:  mustDuration(getEnv("NEXT_PROMPT_DELAY", "1500ms")),

		AlertGatewayURL: getEnv("ALERT_GATEWAY_URL", ""),
		AlertGatewayKey: getEnv("ALERT_GATEWAY_KEY", ""),
		AlertRecipient:  getEnv("ALERT_RECIPIENT", ""),
	}

	switch cfg.AssistantProvider {
	case "endpoint", "gemini":
	default:
		return nil, fmt.Errorf("invalid ASSISTANT_PROVIDER %q (want endpoint or gemini)", cfg.AssistantProvider)
	}

	return cfg, nil
}

// HTTPConfig implementation

func (c *Config) GetHTTPAddr() string       { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool     { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string  { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool   { return c.CORSAllowCreds }

// AssistantConfig implementation

func (c *Config) GetAssistantProvider() string       { return c.AssistantProvider }
func (c *Config) GetAssistantURL() string            { return c.AssistantURL }
func (c *Config) GetAssistantAPIKey() string         { return c.AssistantAPIKey }
func (c *Config) GetAssistantTimeout() time.Duration { return c.AssistantTimeout }
func (c *Config) GetGeminiAPIKey() string            { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string             { return c.GeminiModel }

// CatalogConfig implementation

func (c *Config) GetCatalogURL() string                { return c.CatalogURL }
func (c *Config) GetCatalogTimeout() time.Duration     { return c.CatalogTimeout }
func (c *Config) GetCatalogRefreshTTL() time.Duration  { return c.CatalogRefreshTTL }

// IntakeConfig implementation

func (c *Config) GetIntakeURL() string            { return c.IntakeURL }
func (c *Config) GetIntakeAPIKey() string         { return c.IntakeAPIKey }
func (c *Config) GetIntakeTimeout() time.Duration { return c.IntakeTimeout }

// SessionConfig implementation

func (c *Config) GetRedisURL() string           { return c.RedisURL }
func (c *Config) GetSessionTTL() time.Duration  { return c.SessionTTL }

// ChatConfig implementation

func (c *Config) GetDefaultLanguage() string          { return c.DefaultLanguage }
func (c *Config) GetFirstPromptDelay() time.Duration  { return c.FirstPromptDelay }
func (c *Config) GetNextPromptDelay() time.Duration   { return c.NextPromptDelay }

// AlertsConfig implementation

func (c *Config) GetAlertGatewayURL() string { return c.AlertGatewayURL }
func (c *Config) GetAlertGatewayKey() string { return c.AlertGatewayKey }
func (c *Config) GetAlertRecipient() string  { return c.AlertRecipient }
func (c *Config) IsAlertsEnabled() bool {
	return c.AlertGatewayURL != "" && c.AlertRecipient != ""
}

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(fmt.Sprintf("invalid duration %q: %v", value, err))
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
