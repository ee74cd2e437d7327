package notifier

import (
	"context"

	"github.com/heonampyo/TennisTracker/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Notify sends a direct message to one player. The token identifies the
	// player on the provider side. Delivery is best effort.
	Notify(ctx context.Context, token, title, body string, dryRun bool) error
	// For recorded matches
	SendMatchResult(ctx context.Context, winner, loser string, dryRun bool) error
	// For the scheduled leaderboard post
	SendLeaderboard(ctx context.Context, title string, standings []stats.Standing, dryRun bool) error
}
