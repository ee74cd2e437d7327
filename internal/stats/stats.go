// Package stats derives standings from match records. Everything here is a
// pure function of its arguments.
package stats

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/heonampyo/TennisTracker/internal/ledger"
)

// DefaultScore counts wins first and adds the win ratio as a fraction, so a
// player's total wins always dominate and the ratio only separates equal
// win counts.
func DefaultScore(wins, games int) float64 {
	if games <= 0 {
		return 0
	}
	return float64(wins) + float64(wins)/float64(games)
}

// FormatWinRate renders wins/games as a percentage with one decimal place.
func FormatWinRate(wins, games int) string {
	if games <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(wins)/float64(games)*100)
}

// ParseWinRate turns a formatted win rate back into a number. Malformed
// input counts as zero.
func ParseWinRate(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ComputeUserStats totals a player's records. A nil score uses DefaultScore.
func ComputeUserStats(records []ledger.MatchRecord, score ScoreFunc) UserStats {
	if score == nil {
		score = DefaultScore
	}
	var s UserStats
	for _, r := range records {
		s.TotalWins += r.Wins
		s.TotalLosses += r.Losses
	}
	s.TotalGames = s.TotalWins + s.TotalLosses
	s.WinRate = FormatWinRate(s.TotalWins, s.TotalGames)
	s.Score = score(s.TotalWins, s.TotalGames)
	return s
}

// ComputeOpponentStats groups records by exact opponent name. Results are
// ordered by win rate, highest first; equal win rates are ordered by
// opponent name.
func ComputeOpponentStats(records []ledger.MatchRecord) []OpponentStats {
	byOpponent := make(map[string]*OpponentStats)
	for _, r := range records {
		os, ok := byOpponent[r.Opponent]
		if !ok {
			os = &OpponentStats{Opponent: r.Opponent}
			byOpponent[r.Opponent] = os
		}
		os.Wins += r.Wins
		os.Losses += r.Losses
	}

	out := make([]OpponentStats, 0, len(byOpponent))
	for _, os := range byOpponent {
		os.WinRate = FormatWinRate(os.Wins, os.Wins+os.Losses)
		out = append(out, *os)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := ParseWinRate(out[i].WinRate), ParseWinRate(out[j].WinRate)
		if ri != rj {
			return ri > rj
		}
		return out[i].Opponent < out[j].Opponent
	})
	return out
}

// FilterByYear keeps the records created during year, as seen from loc.
// The input slice is not modified.
func FilterByYear(records []ledger.MatchRecord, year int, loc *time.Location) []ledger.MatchRecord {
	if loc == nil {
		loc = DefaultLocation
	}
	out := make([]ledger.MatchRecord, 0, len(records))
	for _, r := range records {
		if r.CreatedAt.In(loc).Year() == year {
			out = append(out, r)
		}
	}
	return out
}

// Rank orders standings by score, then numeric win rate, then name, and
// assigns 1-based ranks. The input slice is sorted in place and returned.
func Rank(standings []Standing) []Standing {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i].Stats, standings[j].Stats
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		ra, rb := ParseWinRate(a.WinRate), ParseWinRate(b.WinRate)
		if ra != rb {
			return ra > rb
		}
		return standings[i].PlayerName < standings[j].PlayerName
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
