package stats

// UserStats summarises every record a player owns.
type UserStats struct {
	TotalGames  int     `json:"totalGames"`
	TotalWins   int     `json:"totalWins"`
	TotalLosses int     `json:"totalLosses"`
	WinRate     string  `json:"winRate"`
	Score       float64 `json:"score"`
}

// OpponentStats summarises a player's records against one opponent name.
type OpponentStats struct {
	Opponent string `json:"opponent"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	WinRate  string `json:"winRate"`
}

// Standing is one row of the leaderboard.
type Standing struct {
	Rank       int       `json:"rank"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Stats      UserStats `json:"stats"`
}

// ScoreFunc ranks a player from their win count and games played.
type ScoreFunc func(wins, games int) float64
