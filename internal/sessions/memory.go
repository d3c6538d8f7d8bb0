package sessions

import (
	"fmt"
	"sync"

	"github.com/roastify/roastify/internal/shared"
)

// MemoryStore is an in-memory [Store] implementation guarded by a read-write mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]TokenRecord
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]TokenRecord)}
}

// Get retrieves the token record for a session, or (nil, nil) if none exists.
func (s *MemoryStore) Get(sessionID string) (*TokenRecord, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is required", shared.ErrInvalidArgument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[sessionID]
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate the stored record.
	return &rec, nil
}

// Set creates or replaces the token record for a session.
func (s *MemoryStore) Set(sessionID string, record *TokenRecord) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is required", shared.ErrInvalidArgument)
	}
	if record == nil {
		return fmt.Errorf("%w: record is required", shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[sessionID] = *record
	return nil
}

// Delete removes the token record for a session, if present.
func (s *MemoryStore) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is required", shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, sessionID)
	return nil
}
