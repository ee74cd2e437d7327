package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/heonampyo/TennisTracker/internal/stats"
	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultLeaderboardCron = "0 18 * * 5"
)

// Load reads configuration from environment variables and .env file.
// It exits the process when required configuration is missing or invalid.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing string
	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		if missing == "" {
			missing = key
		}
		return ""
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:          getEnv("DB_NAME"),
		Port:            getEnvOr("PORT", defaultPort),
		AdminSecret:     getEnvOr("ADMIN_SECRET", ""),
		DisplayTimezone: getEnvOr("DISPLAY_TIMEZONE", ""),
		LeaderboardCron: getEnvOr("LEADERBOARD_CRON", defaultLeaderboardCron),
		Slack: SlackConfig{
			Token:         getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnvOr("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnvOr("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnvOr("GCP_PROJECT", ""),
	}
	if missing != "" {
		return Config{}, fmt.Errorf("required environment variable %s is not set", missing)
	}

	loc, err := stats.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}
	cfg.Location = loc
	return cfg, nil
}
