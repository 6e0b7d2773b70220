package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/spf13/viper"
)

const (
	DefaultPort = 5000

	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Error is a startup-fatal configuration failure. The process must not
// bind a listener while one is pending.
type Error struct {
	Key    string
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration %s: %s", e.Key, e.Reason)
	}

	return fmt.Sprintf("configuration: missing required %s", e.Key)
}

// Config is read once at startup and never mutated afterwards.
type Config struct {
	BotToken          string
	ChannelID         string
	ChannelUsername   string
	DeveloperUsername string
	WebhookSecret     string

	AIProvider       string
	GeminiAPIKey     string
	GeminiModel      string
	OpenRouterAPIKey string
	AITimeout        time.Duration

	HandlerTimeout time.Duration

	ExternalURL   string
	Port          int
	BroadcastCron string
	LogLevel      string
}

var envBindings = map[string]string{
	"telegram.bot_token":          "BOT_TOKEN",
	"telegram.channel_id":         "CHANNEL_ID",
	"telegram.channel_username":   "CHANNEL_USERNAME",
	"telegram.developer_username": "DEVELOPER_USERNAME",
	"telegram.webhook_secret":     "WEBHOOK_SECRET",
	"ai.provider":                 "AI_PROVIDER",
	"ai.gemini_api_key":           "GEMINI_API_KEY",
	"ai.gemini_model":             "GEMINI_MODEL",
	"ai.openrouter_api_key":       "OPENROUTER_API_KEY",
	"ai.timeout":                  "AI_TIMEOUT",
	"handler.timeout":             "HANDLER_TIMEOUT",
	"server.external_url":         "RENDER_EXTERNAL_URL",
	"server.port":                 "PORT",
	"broadcast.cron":              "BROADCAST_CRON",
	"bot.log_level":               "LOG_LEVEL",
}

// Load resolves the service configuration from the environment.
func Load() (*Config, error) {
	for key, env := range envBindings {
		viper.MustBindEnv(key, env)
	}

	viper.SetDefault("telegram.channel_username", "your_channel_username")
	viper.SetDefault("telegram.developer_username", "your_developer_username")
	viper.SetDefault("ai.provider", ProviderGemini)
	viper.SetDefault("ai.gemini_model", "gemini-2.0-flash")
	viper.SetDefault("ai.timeout", "45s")
	viper.SetDefault("handler.timeout", "90s")
	viper.SetDefault("server.port", DefaultPort)
	viper.SetDefault("broadcast.cron", "0 6 * * *")
	viper.SetDefault("bot.log_level", "info")

	cfg := &Config{
		BotToken:          viper.GetString("telegram.bot_token"),
		ChannelID:         viper.GetString("telegram.channel_id"),
		ChannelUsername:   strings.TrimPrefix(viper.GetString("telegram.channel_username"), "@"),
		DeveloperUsername: strings.TrimPrefix(viper.GetString("telegram.developer_username"), "@"),
		WebhookSecret:     viper.GetString("telegram.webhook_secret"),
		AIProvider:        viper.GetString("ai.provider"),
		GeminiAPIKey:      viper.GetString("ai.gemini_api_key"),
		GeminiModel:       viper.GetString("ai.gemini_model"),
		OpenRouterAPIKey:  viper.GetString("ai.openrouter_api_key"),
		ExternalURL:       strings.TrimSuffix(viper.GetString("server.external_url"), "/"),
		Port:              viper.GetInt("server.port"),
		BroadcastCron:     viper.GetString("broadcast.cron"),
		LogLevel:          viper.GetString("bot.log_level"),
	}

	if cfg.BotToken == "" {
		return nil, &Error{Key: "BOT_TOKEN"}
	}

	if cfg.AIProvider != ProviderGemini && cfg.AIProvider != ProviderOpenRouter {
		return nil, &Error{Key: "AI_PROVIDER", Reason: "must be gemini or openrouter"}
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, &Error{Key: "PORT", Reason: "not a valid port number"}
	}

	var err error
	cfg.AITimeout, err = time.ParseDuration(viper.GetString("ai.timeout"))
	if err != nil {
		return nil, &Error{Key: "AI_TIMEOUT", Reason: err.Error()}
	}

	cfg.HandlerTimeout, err = time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		return nil, &Error{Key: "HANDLER_TIMEOUT", Reason: err.Error()}
	}

	if cfg.WebhookSecret == "" {
		secret, err := uuid.NewV4()
		if err != nil {
			return nil, &Error{Key: "WEBHOOK_SECRET", Reason: "could not generate one"}
		}
		cfg.WebhookSecret = secret.String()
	}

	return cfg, nil
}

// AIEnabled reports whether the selected AI provider has a key configured.
func (c *Config) AIEnabled() bool {
	if c.AIProvider == ProviderOpenRouter {
		return c.OpenRouterAPIKey != ""
	}

	return c.GeminiAPIKey != ""
}

// SubscriptionGated reports whether a required channel is configured.
func (c *Config) SubscriptionGated() bool {
	return c.ChannelID != ""
}

// WebhookURL is the public update endpoint, empty when no external URL
// is configured.
func (c *Config) WebhookURL() string {
	if c.ExternalURL == "" {
		return ""
	}

	return c.ExternalURL + "/telegram"
}
