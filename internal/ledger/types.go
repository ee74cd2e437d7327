package ledger

import (
	"strings"
	"time"
)

// Player is a club member. Names are unique and never contain whitespace.
type Player struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	NotificationToken string    `json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
}

// MatchRecord is one player's side of one reported match.
// Wins + Losses is always 1.
type MatchRecord struct {
	ID        int64     `json:"id"`
	PlayerID  string    `json:"-"`
	Opponent  string    `json:"opponent"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	CreatedAt time.Time `json:"createdAt"`
	MatchID   string    `json:"matchId,omitempty"`
}

// Outcome says which side of a reported match won.
type Outcome string

const (
	AWins Outcome = "A_WINS"
	BWins Outcome = "B_WINS"
)

// ParseOutcome accepts the wire values plus the "win"/"loss" shorthand, read
// from player A's point of view.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(AWins), "WIN":
		return AWins, nil
	case string(BWins), "LOSS":
		return BWins, nil
	}
	return "", &ValidationError{Field: "outcome", Reason: "must be A_WINS or B_WINS"}
}

// Clock returns the current time. Injected so tests can pin timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock with time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IDGenerator produces match identifiers.
type IDGenerator interface {
	NewID() string
}
