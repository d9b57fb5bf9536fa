package session

import (
	"context"
	"sync"
	"time"

	"edaviz/domain/core"
	"edaviz/internal"
)

var logger = internal.DefaultLogger.Named("SessionStore")

// Store keeps sessions in memory and forgets them after ttl of inactivity
type Store struct {
	mu       sync.Mutex
	sessions map[core.SessionID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty session store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[core.SessionID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session
func (s *Store) Create() *Session {
	sess := newSession(core.NewSessionID(), s.now())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	logger.Debug("Created session %s", sess.ID)
	return sess
}

// Get returns a live session and refreshes its expiry
func (s *Store) Get(id core.SessionID) (*Session, bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if sess.expired(now, s.ttl) {
		delete(s.sessions, id)
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// Resolve returns the session for a raw cookie value, creating a fresh one
// when the value is malformed, unknown or expired. created reports the latter.
func (s *Store) Resolve(raw string) (sess *Session, created bool) {
	if id, err := core.ParseSessionID(raw); err == nil {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}
	return s.Create(), true
}

// Delete forgets a session
func (s *Store) Delete(id core.SessionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len reports the number of stored sessions, expired ones included until swept
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanupExpired removes every session idle for longer than the ttl
func (s *Store) CleanupExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.expired(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired sessions every interval until ctx is cancelled
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Debug("Janitor stopped")
				return
			case <-ticker.C:
				if removed := s.CleanupExpired(); removed > 0 {
					logger.Info("Cleaned up %d expired sessions", removed)
				}
			}
		}
	}()
}
