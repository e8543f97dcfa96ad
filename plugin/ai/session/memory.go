package session

import (
	"context"
	"sync"
	"time"
)

// memoryStore implements Service with process-local state. Used in demo mode
// and in tests.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() Service {
	return &memoryStore{
		sessions: make(map[string][]Turn),
	}
}

func (s *memoryStore) Append(_ context.Context, sessionID string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.sessions[sessionID], turn)
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}
	s.sessions[sessionID] = turns
	return nil
}

func (s *memoryStore) List(_ context.Context, sessionID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *memoryStore) Reset(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *memoryStore) CleanupExpired(_ context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for sessionID, turns := range s.sessions {
		kept := turns[:0]
		for _, turn := range turns {
			if turn.Timestamp.Before(cutoff) {
				deleted++
				continue
			}
			kept = append(kept, turn)
		}
		if len(kept) == 0 {
			delete(s.sessions, sessionID)
		} else {
			s.sessions[sessionID] = kept
		}
	}
	return deleted, nil
}

var _ Service = (*memoryStore)(nil)
