package club

import (
	"context"
	"time"

	"github.com/heonampyo/TennisTracker/internal/ledger"
	"github.com/heonampyo/TennisTracker/internal/stats"
)

// Period restricts a view to one calendar year in the display zone.
// A zero Year means all time.
type Period struct {
	Year     int
	Location *time.Location
}

func (p Period) apply(records []ledger.MatchRecord) []ledger.MatchRecord {
	if p.Year == 0 {
		return records
	}
	return stats.FilterByYear(records, p.Year, p.Location)
}

// PlayerSummary is the detail view of one player.
type PlayerSummary struct {
	Player    ledger.Player         `json:"player"`
	Records   []ledger.MatchRecord  `json:"records"`
	Stats     stats.UserStats       `json:"stats"`
	Opponents []stats.OpponentStats `json:"opponents"`
}

// Leaderboard ranks the players that played in the period. Ranks run
// 1..n without gaps.
func Leaderboard(ctx context.Context, store ClubStore, period Period, score stats.ScoreFunc) ([]stats.Standing, error) {
	all, err := collectStandings(ctx, store, period, score)
	if err != nil {
		return nil, err
	}
	active := make([]stats.Standing, 0, len(all))
	for _, st := range all {
		if st.Stats.TotalGames > 0 {
			active = append(active, st)
		}
	}
	return stats.Rank(active), nil
}

// Standings ranks every player, including those without games in the period.
func Standings(ctx context.Context, store ClubStore, period Period, score stats.ScoreFunc) ([]stats.Standing, error) {
	all, err := collectStandings(ctx, store, period, score)
	if err != nil {
		return nil, err
	}
	return stats.Rank(all), nil
}

func collectStandings(ctx context.Context, store ClubStore, period Period, score stats.ScoreFunc) ([]stats.Standing, error) {
	players, err := store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	records, err := store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[string][]ledger.MatchRecord, len(players))
	for _, r := range period.apply(records) {
		byPlayer[r.PlayerID] = append(byPlayer[r.PlayerID], r)
	}

	standings := make([]stats.Standing, 0, len(players))
	for _, p := range players {
		standings = append(standings, stats.Standing{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Stats:      stats.ComputeUserStats(byPlayer[p.ID], score),
		})
	}
	return standings, nil
}

// Summarize builds the detail view for one player.
func Summarize(ctx context.Context, store ClubStore, playerID string, period Period, score stats.ScoreFunc) (*PlayerSummary, error) {
	player, err := store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	records, err := store.ListRecordsForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	records = period.apply(records)

	return &PlayerSummary{
		Player:    *player,
		Records:   records,
		Stats:     stats.ComputeUserStats(records, score),
		Opponents: stats.ComputeOpponentStats(records),
	}, nil
}
