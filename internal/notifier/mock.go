package notifier

import (
	"sync"

	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/roster"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendResultNotificationFunc func(entry history.Entry, dryRun bool) error
	SendLeaderboardFunc        func(entries []roster.LeaderboardEntry, dryRun bool) error

	// Call records
	SendResultNotificationCalls []history.Entry
	SendLeaderboardCalls        [][]roster.LeaderboardEntry
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendResultNotification(entry history.Entry, dryRun bool) error {
	m.mu.Lock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, entry)
	m.mu.Unlock()
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(entry, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(entries []roster.LeaderboardEntry, dryRun bool) error {
	m.mu.Lock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, entries)
	m.mu.Unlock()
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(entries, dryRun)
	}
	return nil
}
