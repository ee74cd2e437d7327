package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/heonampyo/TennisTracker/internal/club"
	"github.com/heonampyo/TennisTracker/internal/ledger"
	"github.com/heonampyo/TennisTracker/internal/metrics"
	"github.com/heonampyo/TennisTracker/internal/pubsub"
	"github.com/heonampyo/TennisTracker/internal/stats"
)

// WithLocation sets the zone used to pick the leaderboard year.
func WithLocation(loc *time.Location) Option {
	return func(p *Processor) { p.location = loc }
}

// WithScore replaces the ranking score.
func WithScore(score stats.ScoreFunc) Option {
	return func(p *Processor) { p.score = score }
}

// WithNow replaces the wall clock.
func WithNow(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// New creates a new Processor.
func New(store club.ClubStore, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, opts ...Option) *Processor {
	p := &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		location: stats.DefaultLocation,
		score:    stats.DefaultScore,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishMatchRecorded announces a freshly recorded pair of records.
func (p *Processor) PublishMatchRecorded(a, b *ledger.MatchRecord, dryRun bool) error {
	if a == nil || b == nil {
		return errors.New("both records are required")
	}
	winner, loser := a, b
	if a.Wins == 0 {
		winner, loser = b, a
	}
	event := MatchRecordedEvent{
		MatchID:    a.MatchID,
		WinnerID:   winner.PlayerID,
		WinnerName: loser.Opponent,
		LoserID:    loser.PlayerID,
		LoserName:  winner.Opponent,
		RecordedAt: a.CreatedAt,
		DryRun:     dryRun,
	}
	if err := p.pubsub.SendMessage(pubsub.EventMatchRecorded, event); err != nil {
		return fmt.Errorf("failed to publish match recorded event: %w", err)
	}
	log.Debug("Published match recorded event", "matchID", event.MatchID)
	return nil
}

// HandleMatchRecorded sends the per-player notifications and the channel
// announcement for one match. Delivery failures are logged and never retried.
func (p *Processor) HandleMatchRecorded(ctx context.Context, event MatchRecordedEvent, dryRun bool) error {
	dryRun = dryRun || event.DryRun
	log.Info("Handling match recorded event", "matchID", event.MatchID, "winner", event.WinnerName, "loser", event.LoserName, "dryRun", dryRun)

	players, err := p.store.GetPlayers(ctx, []string{event.WinnerID, event.LoserID})
	if err != nil {
		log.Error("Failed to load players for notification", "error", err, "matchID", event.MatchID)
		return err
	}

	for _, player := range players {
		if player.NotificationToken == "" {
			log.Debug("Player has no notification token, skipping", "playerID", player.ID)
			continue
		}
		body := fmt.Sprintf("You beat %s. Nice match!", event.LoserName)
		if player.ID == event.LoserID {
			body = fmt.Sprintf("You lost to %s. Better luck next time!", event.WinnerName)
		}
		if err := p.notifier.Notify(ctx, player.NotificationToken, "Match recorded", body, dryRun); err != nil {
			log.Warn("Failed to notify player", "error", err, "playerID", player.ID, "matchID", event.MatchID)
		}
	}

	if err := p.notifier.SendMatchResult(ctx, event.WinnerName, event.LoserName, dryRun); err != nil {
		log.Warn("Failed to announce match result", "error", err, "matchID", event.MatchID)
	}
	return nil
}

// PostLeaderboard ranks all players for year and posts the standings to the
// club channel. A zero year posts the all-time board.
func (p *Processor) PostLeaderboard(ctx context.Context, year int, dryRun bool) error {
	standings, err := club.Leaderboard(ctx, p.store, club.Period{Year: year, Location: p.location}, p.score)
	if err != nil {
		log.Error("Failed to build leaderboard", "error", err, "year", year)
		return err
	}

	title := "All-time Leaderboard"
	if year != 0 {
		title = fmt.Sprintf("%d Leaderboard", year)
	}
	if err := p.notifier.SendLeaderboard(ctx, title, standings, dryRun); err != nil {
		log.Error("Failed to post leaderboard", "error", err, "year", year)
		return err
	}
	p.metrics.IncLeaderboardPosts()
	log.Info("Posted leaderboard", "year", year, "players", len(standings))
	return nil
}

// PostCurrentLeaderboard posts the board for the current year in the display zone.
func (p *Processor) PostCurrentLeaderboard(ctx context.Context, dryRun bool) error {
	return p.PostLeaderboard(ctx, p.now().In(p.location).Year(), dryRun)
}
