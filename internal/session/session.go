package session

import (
	"sync"
	"time"

	"edaviz/domain/core"
	"edaviz/domain/dataset"
)

// Session is the per-visitor context every render reads from.
// It holds at most one dataset, replaced on each upload.
type Session struct {
	ID        core.SessionID
	CreatedAt time.Time

	mu       sync.RWMutex
	dataset  *dataset.Dataset
	loadedAt time.Time
	lastSeen time.Time
}

func newSession(id core.SessionID, now time.Time) *Session {
	return &Session{ID: id, CreatedAt: now, lastSeen: now}
}

// Dataset returns the loaded dataset, or nil before the first upload
func (s *Session) Dataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// LoadedAt reports when the current dataset was stored
func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// SetDataset replaces the session dataset
func (s *Session) SetDataset(ds *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.loadedAt = time.Now()
}

// Clear drops the session dataset
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = nil
	s.loadedAt = time.Time{}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastSeen) > ttl
}
