package kvstore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// store persists msgpack-encoded documents in the documents table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new document Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Load decodes the document stored under key into out. The second return is
// false when no document exists.
func (s *store) Load(key string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob []byte
	err := s.db.QueryRow("SELECT value FROM documents WHERE key = ?", key).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load document %q: %w", key, err)
	}

	if err := msgpack.Unmarshal(blob, out); err != nil {
		log.Error("MessagePack unmarshal error", "error", err, "key", key)
		return false, fmt.Errorf("failed to decode document %q: %w", key, err)
	}
	return true, nil
}

// Save overwrites the document stored under key.
func (s *store) Save(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := msgpack.Marshal(value)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err, "key", key)
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, blob, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document %q: %w", key, err)
	}
	return nil
}

// Remove deletes the document stored under key. Removing an absent key is a no-op.
func (s *store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove document %q: %w", key, err)
	}
	return nil
}
