package club

import (
	"context"

	"github.com/heonampyo/TennisTracker/internal/ledger"
)

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	ledger.Store
	ledger.PairWriter
	GetPlayer(ctx context.Context, playerID string) (*ledger.Player, error)
	GetPlayers(ctx context.Context, playerIDs []string) ([]ledger.Player, error)
	ListPlayers(ctx context.Context) ([]ledger.Player, error)
	ListRecords(ctx context.Context) ([]ledger.MatchRecord, error)
	SetNotificationToken(ctx context.Context, playerID, token string) error
}
