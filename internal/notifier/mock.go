package notifier

import (
	"context"
	"sync"

	"github.com/heonampyo/TennisTracker/internal/stats"
)

var _ Notifier = (*Mock)(nil)

// NotifyCall holds the arguments for a call to Notify.
type NotifyCall struct {
	Token string
	Title string
	Body  string
}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	NotifyFunc          func(token, title, body string) error
	SendLeaderboardFunc func(title string, standings []stats.Standing) error

	// Call records
	NotifyCalls          []NotifyCall
	SendMatchResultCalls []struct{ Winner, Loser string }
	SendLeaderboardCalls []struct {
		Title     string
		Standings []stats.Standing
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyCalls = nil
	m.SendMatchResultCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *Mock) Notify(ctx context.Context, token, title, body string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyCalls = append(m.NotifyCalls, NotifyCall{Token: token, Title: title, Body: body})
	if m.NotifyFunc != nil {
		return m.NotifyFunc(token, title, body)
	}
	return nil
}

func (m *Mock) SendMatchResult(ctx context.Context, winner, loser string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct{ Winner, Loser string }{winner, loser})
	return nil
}

func (m *Mock) SendLeaderboard(ctx context.Context, title string, standings []stats.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Title     string
		Standings []stats.Standing
	}{title, standings})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(title, standings)
	}
	return nil
}

// Calls returns a copy of the recorded Notify calls.
func (m *Mock) Calls() []NotifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NotifyCall(nil), m.NotifyCalls...)
}
