package session

import (
	"context"
	"sync"
)

// Repository stores at most one session per chat. Get on an unknown chat
// returns a fresh idle session; there is no historical session log.
type Repository interface {
	Get(ctx context.Context, chatID int64) (Session, error)
	Put(ctx context.Context, chatID int64, s Session) error
	Clear(ctx context.Context, chatID int64) error
}

// Locker serializes the session read-modify-write per chat id, so duplicate
// webhook deliveries for the same chat cannot race each other.
type Locker struct {
	locks sync.Map // chatID -> *sync.Mutex
}

// Lock acquires the mutex for chatID, creating it on first use.
func (l *Locker) Lock(chatID int64) {
	mu, _ := l.locks.LoadOrStore(chatID, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for chatID.
func (l *Locker) Unlock(chatID int64) {
	mu, ok := l.locks.Load(chatID)
	if !ok {
		return
	}
	mu.(*sync.Mutex).Unlock()
}
