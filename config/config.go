package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"firstmessage/core/log"
)

type DiscordConfig struct {
	BotToken string
	AppID    string
	// GuildID registers the command in a single guild instead of globally
	GuildID string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" && c.AppID != ""
}

type SlackConfig struct {
	AlertWebhookURL string
}

// IsConfigured returns true if Slack alerting is enabled
func (c SlackConfig) IsConfigured() bool {
	return c.AlertWebhookURL != ""
}

type SearchConfig struct {
	Timeout      time.Duration
	DeepLinkBase string
}

type AppConfig struct {
	Port                  string // Optional with default "8080"
	Environment           string
	ServerLogsURL         string
	MaxConcurrentCommands int

	DiscordConfig DiscordConfig
	SlackConfig   SlackConfig
	SearchConfig  SearchConfig
}

// LoadConfig reads envFile (if present) and then the process environment
func LoadConfig(envFile string) (*AppConfig, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Warn("⚠️ Could not load env file, continuing with system env vars", "file", envFile)
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}
	appID, err := getEnvRequired("DISCORD_APP_ID")
	if err != nil {
		return nil, err
	}

	searchTimeout, err := getEnvDuration("SEARCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	maxConcurrent, err := getEnvInt("MAX_CONCURRENT_COMMANDS", 8)
	if err != nil {
		return nil, err
	}
	if maxConcurrent < 1 {
		return nil, fmt.Errorf("MAX_CONCURRENT_COMMANDS must be at least 1, got %d", maxConcurrent)
	}

	config := &AppConfig{
		Port:                  getEnvWithDefault("PORT", "8080"),
		Environment:           getEnvWithDefault("ENVIRONMENT", "dev"),
		ServerLogsURL:         getEnvWithDefault("SERVER_LOGS_URL", ""),
		MaxConcurrentCommands: maxConcurrent,

		DiscordConfig: DiscordConfig{
			BotToken: botToken,
			AppID:    appID,
			GuildID:  os.Getenv("DISCORD_GUILD_ID"),
		},

		// Slack configuration (optional)
		SlackConfig: SlackConfig{
			AlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},

		SearchConfig: SearchConfig{
			Timeout:      searchTimeout,
			DeepLinkBase: getEnvWithDefault("DEEP_LINK_BASE_URL", "https://discord.com/channels"),
		},
	}

	if config.DiscordConfig.GuildID != "" {
		log.Info("✅ Command will be registered in a single guild", "guild_id", config.DiscordConfig.GuildID)
	} else {
		log.Info("✅ Command will be registered globally")
	}

	if config.SlackConfig.IsConfigured() {
		log.Info("✅ Slack error alerts configured")
	} else {
		log.Warn("⚠️ Slack error alerts not configured - errors will only be logged")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid integer: %w", key, err)
	}
	return n, nil
}
