package session

import (
	"context"
	"sync"
)

// MemoryRepository is the default process-local session store.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewMemoryRepository creates an empty in-memory session repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[int64]Session),
	}
}

// Get returns the stored session, or a fresh idle one for unknown chats.
func (r *MemoryRepository) Get(_ context.Context, chatID int64) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[chatID]; ok {
		return s, nil
	}
	return New(), nil
}

// Put stores the session for chatID.
func (r *MemoryRepository) Put(_ context.Context, chatID int64, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[chatID] = s
	return nil
}

// Clear removes the session for chatID.
func (r *MemoryRepository) Clear(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
	return nil
}
