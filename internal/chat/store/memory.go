package store

import (
	"context"
	"sync"
	"time"

	"propertychat_backend/internal/chat/domain"
	"propertychat_backend/platform/apperr"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. The default backend; fine
// for a single instance.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an in-memory session store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Put stores a deep-enough copy of the session so later caller mutations
// cannot bypass the store.
func (s *MemoryStore) Put(_ context.Context, session *Session) error {
	copied := *session
	copied.Messages = append([]domain.Message(nil), session.Messages...)
	copied.History = append([]domain.Message(nil), session.History...)
	copied.UpdatedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = &copied
	return nil
}

// Get returns a copy of the stored session, expiring stale entries lazily.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	stored, ok := s.sessions[id]
	s.mu.RUnlock()

	if ok && s.ttl > 0 && s.now().Sub(stored.UpdatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		ok = false
	}
	if !ok {
		return nil, apperr.NotFound("session not found")
	}

	copied := *stored
	copied.Messages = append([]domain.Message(nil), stored.Messages...)
	copied.History = append([]domain.Message(nil), stored.History...)
	return &copied, nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
