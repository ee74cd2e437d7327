package ledger

import "context"

// Store is the persistence collaborator the recorder depends on.
type Store interface {
	// FindPlayerByName returns a *NotFoundError when no player has exactly this name.
	FindPlayerByName(ctx context.Context, name string) (*Player, error)
	CreatePlayer(ctx context.Context, name string) (*Player, error)
	InsertMatchRecord(ctx context.Context, record *MatchRecord) error
	ListRecordsForPlayer(ctx context.Context, playerID string) ([]MatchRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

// PairWriter is implemented by stores that can persist both sides of a match
// in a single transaction.
type PairWriter interface {
	InsertMatchPair(ctx context.Context, a, b *MatchRecord) error
}
