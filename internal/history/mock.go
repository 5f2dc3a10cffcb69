package history

import "sync"

// MockLedger is a mock implementation of the Ledger interface for testing.
// It keeps entries in memory, most-recent-first, like the real store.
type MockLedger struct {
	mu sync.Mutex

	AppendFunc func(entry Entry) error
	ListFunc   func(limit int) ([]Entry, error)
	ResetFunc  func() error

	Entries    []Entry
	ResetCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockLedger {
	return &MockLedger{}
}

func (m *MockLedger) Append(entry Entry) error {
	m.mu.Lock()
	m.Entries = append([]Entry{entry}, m.Entries...)
	m.mu.Unlock()
	if m.AppendFunc != nil {
		return m.AppendFunc(entry)
	}
	return nil
}

func (m *MockLedger) List(limit int) ([]Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > 0 && limit < len(m.Entries) {
		return append([]Entry(nil), m.Entries[:limit]...), nil
	}
	return append([]Entry(nil), m.Entries...), nil
}

func (m *MockLedger) Reset() error {
	m.mu.Lock()
	m.Entries = nil
	m.ResetCalls++
	m.mu.Unlock()
	if m.ResetFunc != nil {
		return m.ResetFunc()
	}
	return nil
}
