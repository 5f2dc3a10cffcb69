package kvstore

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// MockStore is an in-memory Store for testing. It round-trips values through
// msgpack so tests exercise the same encoding as the real store.
type MockStore struct {
	mu   sync.Mutex
	docs map[string][]byte

	SaveErr error
	LoadErr error

	SaveCalls   []string
	RemoveCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{docs: make(map[string][]byte)}
}

func (m *MockStore) Load(key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return false, m.LoadErr
	}
	blob, ok := m.docs[key]
	if !ok {
		return false, nil
	}
	if err := msgpack.Unmarshal(blob, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MockStore) Save(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, key)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	blob, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	m.docs[key] = blob
	return nil
}

func (m *MockStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, key)
	delete(m.docs, key)
	return nil
}
