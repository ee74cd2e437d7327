package processor

import (
	"time"

	"github.com/heonampyo/TennisTracker/internal/club"
	"github.com/heonampyo/TennisTracker/internal/metrics"
	"github.com/heonampyo/TennisTracker/internal/pubsub"
	"github.com/heonampyo/TennisTracker/internal/stats"
)

// Processor handles everything that happens after a match is recorded.
type Processor struct {
	store    club.ClubStore
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	location *time.Location
	score    stats.ScoreFunc
	now      func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// MatchRecordedEvent is published once per recorded match.
type MatchRecordedEvent struct {
	MatchID    string    `msgpack:"match_id"`
	WinnerID   string    `msgpack:"winner_id"`
	WinnerName string    `msgpack:"winner_name"`
	LoserID    string    `msgpack:"loser_id"`
	LoserName  string    `msgpack:"loser_name"`
	RecordedAt time.Time `msgpack:"recorded_at"`
	DryRun     bool      `msgpack:"dry_run"`
}
