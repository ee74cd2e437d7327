package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/heonampyo/TennisTracker/internal/metrics"
	"github.com/heonampyo/TennisTracker/internal/notifier"
	"github.com/heonampyo/TennisTracker/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

var errNoDestination = errors.New("slack destination is not configured")

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, channelID string, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}
	if s.api == nil || channelID == "" {
		log.Warn("Slack client or channel ID is not configured. Skipping notification.")
		return "", "", errNoDestination
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	respChannel, timestamp, err := s.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", respChannel, "timestamp", timestamp)
	return respChannel, timestamp, nil
}

// Notify sends a direct message. The token is the player's Slack user ID,
// which Slack accepts as a channel for DMs.
func (s *Notifier) Notify(ctx context.Context, token, title, body string, dryRun bool) error {
	msg := formatDirectMessage(title, body)
	_, _, err := s.sendMessage(ctx, token, msg, dryRun)
	return err
}

func (s *Notifier) SendMatchResult(ctx context.Context, winner, loser string, dryRun bool) error {
	msg := formatMatchResult(winner, loser)
	_, _, err := s.sendMessage(ctx, s.channelID, msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(ctx context.Context, title string, standings []stats.Standing, dryRun bool) error {
	msg := FormatLeaderboard(title, standings)
	_, _, err := s.sendMessage(ctx, s.channelID, msg, dryRun)
	return err
}

func formatDirectMessage(title, body string) slack.Message {
	headerText := slack.NewTextBlockObject("plain_text", title, true, false)
	bodyText := slack.NewTextBlockObject("plain_text", body, true, false)
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(bodyText, nil, nil),
	)
}

// formatMatchResult creates the channel announcement for a recorded match using Block Kit.
func formatMatchResult(winner, loser string) slack.Message {
	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match recorded! 🎾", true, false)
	resultText := fmt.Sprintf("%s beat %s 🏆", winner, loser)
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil),
	)
}

// FormatLeaderboard creates a Slack message to display the player leaderboard.
func FormatLeaderboard(title string, standings []stats.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 "+title+" 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var ranked int
	for _, st := range standings {
		if st.Stats.TotalGames == 0 {
			continue
		}
		ranked++
		var medal string
		switch st.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Win %%: %s%% (%d/%d) | Score: %.2f",
			st.Rank,
			medal,
			st.PlayerName,
			st.Stats.WinRate,
			st.Stats.TotalWins,
			st.Stats.TotalGames,
			st.Stats.Score,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	if ranked == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches recorded yet. Go play some matches!", true, false), nil, nil))
	}
	return slack.NewBlockMessage(blocks...)
}

// FormatPlayerStats creates the slash command reply for one player.
func FormatPlayerStats(name string, userStats stats.UserStats, opponents []stats.OpponentStats) slack.Message {
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 Stats for %s", name), true, false)
	summary := fmt.Sprintf("*Matches:* %d  *Wins:* %d  *Losses:* %d\n*Win %%:* %s%%  *Score:* %.2f",
		userStats.TotalGames, userStats.TotalWins, userStats.TotalLosses, userStats.WinRate, userStats.Score)

	blocks := []slack.Block{
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", summary, false, false), nil, nil),
	}
	if len(opponents) > 0 {
		lines := make([]string, 0, len(opponents))
		for _, o := range opponents {
			lines = append(lines, fmt.Sprintf("• %s: %d-%d (%s%%)", o.Opponent, o.Wins, o.Losses, o.WinRate))
		}
		blocks = append(blocks,
			slack.NewDividerBlock(),
			slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "*Head to head*\n"+strings.Join(lines, "\n"), false, false), nil, nil),
		)
	}
	return slack.NewBlockMessage(blocks...)
}

// FormatPlayerNotFound creates the slash command reply for an unknown player.
func FormatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("🤷 No player named %q. Names are case sensitive.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	)
}
