package roster

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc        func(name string) (*Player, error)
	RemovePlayerFunc     func(id string) error
	ToggleStatusFunc     func(id string) error
	GetPlayerFunc        func(id string) (*Player, bool)
	ListPlayersFunc      func() ([]Player, error)
	ActivePlayersFunc    func() ([]Player, error)
	ApplyMatchResultFunc func(playerIDs []string, winnerIDs []string, margin int) error
	LeaderboardFunc      func() ([]LeaderboardEntry, error)
	ResetFunc            func() error

	// Call records
	AddPlayerCalls        []string
	RemovePlayerCalls     []string
	ToggleStatusCalls     []string
	ApplyMatchResultCalls []struct {
		PlayerIDs []string
		WinnerIDs []string
		Margin    int
	}
	ResetCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) AddPlayer(name string) (*Player, error) {
	m.mu.Lock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(name)
	}
	return &Player{Name: name, Status: StatusActive}, nil
}

func (m *MockStore) RemovePlayer(id string) error {
	m.mu.Lock()
	m.RemovePlayerCalls = append(m.RemovePlayerCalls, id)
	m.mu.Unlock()
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(id)
	}
	return nil
}

func (m *MockStore) ToggleStatus(id string) error {
	m.mu.Lock()
	m.ToggleStatusCalls = append(m.ToggleStatusCalls, id)
	m.mu.Unlock()
	if m.ToggleStatusFunc != nil {
		return m.ToggleStatusFunc(id)
	}
	return nil
}

func (m *MockStore) GetPlayer(id string) (*Player, bool) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return nil, false
}

func (m *MockStore) ListPlayers() ([]Player, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) ActivePlayers() ([]Player, error) {
	if m.ActivePlayersFunc != nil {
		return m.ActivePlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) ApplyMatchResult(playerIDs []string, winnerIDs []string, margin int) error {
	m.mu.Lock()
	m.ApplyMatchResultCalls = append(m.ApplyMatchResultCalls, struct {
		PlayerIDs []string
		WinnerIDs []string
		Margin    int
	}{playerIDs, winnerIDs, margin})
	m.mu.Unlock()
	if m.ApplyMatchResultFunc != nil {
		return m.ApplyMatchResultFunc(playerIDs, winnerIDs, margin)
	}
	return nil
}

func (m *MockStore) Leaderboard() ([]LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc()
	}
	return nil, nil
}

func (m *MockStore) Reset() error {
	m.mu.Lock()
	m.ResetCalls++
	m.mu.Unlock()
	if m.ResetFunc != nil {
		return m.ResetFunc()
	}
	return nil
}
