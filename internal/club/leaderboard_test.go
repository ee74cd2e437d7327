package club_test

import (
	"context"
	"testing"
	"time"

	"github.com/heonampyo/TennisTracker/internal/club"
	"github.com/heonampyo/TennisTracker/internal/ledger"
	"github.com/heonampyo/TennisTracker/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededMock() *club.MockStore {
	m := club.NewMock()
	m.AddPlayer(ledger.Player{ID: "a", Name: "Kim"})
	m.AddPlayer(ledger.Player{ID: "b", Name: "Lee"})
	m.AddPlayer(ledger.Player{ID: "c", Name: "Park"})

	y2023 := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	y2024 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	// Kim beats Lee twice in 2024, Lee beats Park once in 2023.
	for i := 0; i < 2; i++ {
		m.AddRecord(ledger.MatchRecord{PlayerID: "a", Opponent: "Lee", Wins: 1, CreatedAt: y2024})
		m.AddRecord(ledger.MatchRecord{PlayerID: "b", Opponent: "Kim", Losses: 1, CreatedAt: y2024})
	}
	m.AddRecord(ledger.MatchRecord{PlayerID: "b", Opponent: "Park", Wins: 1, CreatedAt: y2023})
	m.AddRecord(ledger.MatchRecord{PlayerID: "c", Opponent: "Lee", Losses: 1, CreatedAt: y2023})
	return m
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("all time", func(t *testing.T) {
		standings, err := club.Leaderboard(ctx, seededMock(), club.Period{}, nil)
		require.NoError(t, err)
		require.Len(t, standings, 3)
		assert.Equal(t, "Kim", standings[0].PlayerName)
		assert.Equal(t, 1, standings[0].Rank)
		assert.Equal(t, "Lee", standings[1].PlayerName)
		assert.Equal(t, 3, standings[1].Stats.TotalGames)
		assert.Equal(t, "33.3", standings[1].Stats.WinRate)
		assert.Equal(t, "Park", standings[2].PlayerName)
	})

	t.Run("single year only ranks players with games", func(t *testing.T) {
		standings, err := club.Leaderboard(ctx, seededMock(), club.Period{Year: 2023, Location: stats.DefaultLocation}, nil)
		require.NoError(t, err)
		require.Len(t, standings, 2)
		assert.Equal(t, "Lee", standings[0].PlayerName)
		assert.Equal(t, 1, standings[0].Stats.TotalWins)
		assert.Equal(t, "Park", standings[1].PlayerName)
		assert.Equal(t, 2, standings[1].Rank)
	})

	t.Run("ranks are contiguous when an idle player sorts between active ones", func(t *testing.T) {
		m := club.NewMock()
		m.AddPlayer(ledger.Player{ID: "k", Name: "Kim"})
		m.AddPlayer(ledger.Player{ID: "a", Name: "Ahn"})
		m.AddPlayer(ledger.Player{ID: "y", Name: "Yoo"})
		y2023 := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
		y2024 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		m.AddRecord(ledger.MatchRecord{PlayerID: "a", Opponent: "Kim", Wins: 1, CreatedAt: y2023})
		m.AddRecord(ledger.MatchRecord{PlayerID: "k", Opponent: "Ahn", Losses: 1, CreatedAt: y2023})
		m.AddRecord(ledger.MatchRecord{PlayerID: "k", Opponent: "Yoo", Wins: 1, CreatedAt: y2024})
		m.AddRecord(ledger.MatchRecord{PlayerID: "y", Opponent: "Kim", Losses: 1, CreatedAt: y2024})

		standings, err := club.Leaderboard(ctx, m, club.Period{Year: 2024, Location: stats.DefaultLocation}, nil)
		require.NoError(t, err)
		require.Len(t, standings, 2)
		for i, st := range standings {
			assert.Equal(t, i+1, st.Rank)
			assert.Positive(t, st.Stats.TotalGames)
		}
		assert.Equal(t, "Kim", standings[0].PlayerName)
		assert.Equal(t, "Yoo", standings[1].PlayerName)
	})
}

func TestStandings(t *testing.T) {
	standings, err := club.Standings(context.Background(), seededMock(), club.Period{Year: 2023, Location: stats.DefaultLocation}, nil)
	require.NoError(t, err)
	require.Len(t, standings, 3)
	assert.Equal(t, "Lee", standings[0].PlayerName)
	assert.Equal(t, "Kim", standings[1].PlayerName)
	assert.Equal(t, 0, standings[1].Stats.TotalGames)
	for i, st := range standings {
		assert.Equal(t, i+1, st.Rank)
	}
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()

	summary, err := club.Summarize(ctx, seededMock(), "b", club.Period{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Lee", summary.Player.Name)
	assert.Len(t, summary.Records, 3)
	assert.Equal(t, 1, summary.Stats.TotalWins)
	require.Len(t, summary.Opponents, 2)
	assert.Equal(t, "Park", summary.Opponents[0].Opponent)
	assert.Equal(t, "Kim", summary.Opponents[1].Opponent)

	_, err = club.Summarize(ctx, seededMock(), "missing", club.Period{}, nil)
	var nf *ledger.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
