package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/heonampyo/TennisTracker/internal/metrics"
	"github.com/heonampyo/TennisTracker/internal/stats"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), "C123", message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), "C123", message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), "C123", slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

func TestNotify_UsesTokenAsChannel(t *testing.T) {
	var gotChannel string
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			gotChannel = channelID
			return channelID, "ts", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, notifier.Notify(context.Background(), "U42", "Match recorded", "You beat Lee", false))
	assert.Equal(t, "U42", gotChannel)
}

func TestNotify_MissingToken(t *testing.T) {
	notifier := NewNotifierWithAPI(&mockSlackAPI{}, "C123", metrics.NewMock())
	err := notifier.Notify(context.Background(), "", "t", "b", false)
	assert.ErrorIs(t, err, errNoDestination)
}

func TestFormatLeaderboard(t *testing.T) {
	t.Run("skips players without games", func(t *testing.T) {
		standings := []stats.Standing{
			{Rank: 1, PlayerName: "Kim", Stats: stats.UserStats{TotalGames: 3, TotalWins: 2, WinRate: "66.7", Score: 2.67}},
			{Rank: 2, PlayerName: "Idle", Stats: stats.UserStats{WinRate: "0.0"}},
		}
		msg := FormatLeaderboard("2024 Leaderboard", standings)
		// header + one ranked player
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "Kim")
		assert.Contains(t, section.Text.Text, "66.7%")
	})

	t.Run("empty leaderboard", func(t *testing.T) {
		msg := FormatLeaderboard("2024 Leaderboard", nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "No matches recorded yet")
	})
}

func TestFormatMatchResult(t *testing.T) {
	msg := formatMatchResult("Kim", "Lee")
	require.Len(t, msg.Blocks.BlockSet, 2)
	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Kim beat Lee")
}

func TestFormatPlayerStats(t *testing.T) {
	userStats := stats.UserStats{TotalGames: 3, TotalWins: 2, TotalLosses: 1, WinRate: "66.7", Score: 2.67}
	opponents := []stats.OpponentStats{{Opponent: "Lee", Wins: 2, Losses: 0, WinRate: "100.0"}}

	msg := FormatPlayerStats("Kim", userStats, opponents)
	require.Len(t, msg.Blocks.BlockSet, 4)
	summary, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, summary.Text.Text, "66.7%")
	h2h, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, h2h.Text.Text, "Lee: 2-0")

	noOpponents := FormatPlayerStats("Kim", stats.UserStats{WinRate: "0.0"}, nil)
	assert.Len(t, noOpponents.Blocks.BlockSet, 2)
}
