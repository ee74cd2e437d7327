package ledger

import (
	"context"
	"fmt"
	"sync"
)

// MockStore is an in-memory Store for tests. It does not implement
// PairWriter, so the recorder uses two separate writes against it.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	players map[string]*Player
	records []MatchRecord
	nextID  int64

	// Spies for method calls
	FindPlayerByNameFunc  func(name string) (*Player, error)
	CreatePlayerFunc      func(name string) (*Player, error)
	InsertMatchRecordFunc func(record *MatchRecord) error

	// Call records
	CreatePlayerCalls      []string
	InsertMatchRecordCalls []MatchRecord
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{players: make(map[string]*Player)}
}

func (m *MockStore) FindPlayerByName(ctx context.Context, name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindPlayerByNameFunc != nil {
		return m.FindPlayerByNameFunc(name)
	}
	for _, p := range m.players {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &NotFoundError{Kind: "player", ID: name}
}

func (m *MockStore) CreatePlayer(ctx context.Context, name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, name)
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(name)
	}
	p := &Player{ID: fmt.Sprintf("player-%d", len(m.players)+1), Name: name}
	m.players[p.ID] = p
	cp := *p
	return &cp, nil
}

func (m *MockStore) InsertMatchRecord(ctx context.Context, record *MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMatchRecordCalls = append(m.InsertMatchRecordCalls, *record)
	if m.InsertMatchRecordFunc != nil {
		if err := m.InsertMatchRecordFunc(record); err != nil {
			return err
		}
	}
	m.nextID++
	record.ID = m.nextID
	m.records = append(m.records, *record)
	return nil
}

func (m *MockStore) ListRecordsForPlayer(ctx context.Context, playerID string) ([]MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MatchRecord
	for _, r := range m.records {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockStore) DeleteRecord(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "record", ID: fmt.Sprint(id)}
}

func (m *MockStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	m.players = make(map[string]*Player)
	return nil
}

// Records returns a copy of every stored record.
func (m *MockStore) Records() []MatchRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MatchRecord(nil), m.records...)
}
