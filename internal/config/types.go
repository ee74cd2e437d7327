package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName          string
	Port            string
	AdminSecret     string
	DisplayTimezone string
	Location        *time.Location
	LeaderboardCron string
	Slack           SlackConfig
	Turso           TursoConfig
	ProjectID       string
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// Enabled reports whether Slack delivery is configured.
func (s SlackConfig) Enabled() bool {
	return s.Token != ""
}
