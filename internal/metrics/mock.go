package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	matchesRecorded  int
	recordFailures   map[string]int
	requestDurations map[string][]float64
	notifSent        int
	notifFailed      int
	leaderboardPosts int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		recordFailures:   make(map[string]int),
		requestDurations: make(map[string][]float64),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncRecordFailures(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordFailures[reason]++
}

func (m *Mock) ObserveRequestDuration(route string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestDurations[route] = append(m.requestDurations[route], seconds)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) IncLeaderboardPosts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardPosts++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// RecordFailures returns how often IncRecordFailures was called with reason.
func (m *Mock) RecordFailures(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordFailures[reason]
}

// RequestCount returns how many durations were observed for route.
func (m *Mock) RequestCount(route string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requestDurations[route])
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

// LeaderboardPosts returns the number of times IncLeaderboardPosts was called.
func (m *Mock) LeaderboardPosts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardPosts
}
