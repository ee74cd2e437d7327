package club

import (
	"context"
	"fmt"
	"sync"

	"github.com/heonampyo/TennisTracker/internal/ledger"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It keeps players and records in memory. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	players []ledger.Player
	records []ledger.MatchRecord
	nextID  int64

	// Spies for method calls
	InsertMatchPairFunc func(a, b *ledger.MatchRecord) error
	ListRecordsFunc     func() ([]ledger.MatchRecord, error)
	DeleteAllFunc       func() error

	// Call records
	InsertMatchPairCalls [][2]ledger.MatchRecord
	DeleteRecordCalls    []int64
	DeleteAllCalls       int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// AddPlayer seeds a player directly.
func (m *MockStore) AddPlayer(p ledger.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = append(m.players, p)
}

// AddRecord seeds a record directly and returns its id.
func (m *MockStore) AddRecord(r ledger.MatchRecord) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.records = append(m.records, r)
	return r.ID
}

func (m *MockStore) FindPlayerByName(ctx context.Context, name string) (*ledger.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.Name == name {
			cp := p
			return &cp, nil
		}
	}
	return nil, &ledger.NotFoundError{Kind: "player", ID: name}
}

func (m *MockStore) CreatePlayer(ctx context.Context, name string) (*ledger.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.Name == name {
			cp := p
			return &cp, nil
		}
	}
	p := ledger.Player{ID: fmt.Sprintf("p%d", len(m.players)+1), Name: name}
	m.players = append(m.players, p)
	return &p, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, playerID string) (*ledger.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.ID == playerID {
			cp := p
			return &cp, nil
		}
	}
	return nil, &ledger.NotFoundError{Kind: "player", ID: playerID}
}

func (m *MockStore) GetPlayers(ctx context.Context, playerIDs []string) ([]ledger.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []ledger.Player{}
	for _, id := range playerIDs {
		for _, p := range m.players {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]ledger.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ledger.Player{}, m.players...), nil
}

func (m *MockStore) SetNotificationToken(ctx context.Context, playerID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.players {
		if m.players[i].ID == playerID {
			m.players[i].NotificationToken = token
			return nil
		}
	}
	return &ledger.NotFoundError{Kind: "player", ID: playerID}
}

func (m *MockStore) InsertMatchRecord(ctx context.Context, record *ledger.MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	record.ID = m.nextID
	m.records = append(m.records, *record)
	return nil
}

func (m *MockStore) InsertMatchPair(ctx context.Context, a, b *ledger.MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMatchPairCalls = append(m.InsertMatchPairCalls, [2]ledger.MatchRecord{*a, *b})
	if m.InsertMatchPairFunc != nil {
		if err := m.InsertMatchPairFunc(a, b); err != nil {
			return err
		}
	}
	for _, r := range []*ledger.MatchRecord{a, b} {
		m.nextID++
		r.ID = m.nextID
		m.records = append(m.records, *r)
	}
	return nil
}

func (m *MockStore) ListRecordsForPlayer(ctx context.Context, playerID string) ([]ledger.MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []ledger.MatchRecord{}
	for _, r := range m.records {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockStore) ListRecords(ctx context.Context) ([]ledger.MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListRecordsFunc != nil {
		return m.ListRecordsFunc()
	}
	return append([]ledger.MatchRecord{}, m.records...), nil
}

func (m *MockStore) DeleteRecord(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteRecordCalls = append(m.DeleteRecordCalls, id)
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return &ledger.NotFoundError{Kind: "record", ID: fmt.Sprint(id)}
}

func (m *MockStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteAllCalls++
	if m.DeleteAllFunc != nil {
		if err := m.DeleteAllFunc(); err != nil {
			return err
		}
	}
	m.players = nil
	m.records = nil
	return nil
}
