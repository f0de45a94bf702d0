package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eudistrict/chancery/internal/models"
)

// ErrSessionNotFound is returned for unknown, expired or destroyed sessions.
var ErrSessionNotFound = errors.New("session not found or expired")

// Session is one signed-in officer. It is created on successful
// authentication and destroyed on logout or expiry.
type Session struct {
	ID        string
	Identity  models.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Sessions is the registry of live sessions. It is safe for concurrent use.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time

	// onChange receives the live session count after every change.
	onChange func(n int)
}

// NewSessions creates a registry whose sessions live for ttl.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnChange registers fn to receive the live session count after every change.
func (s *Sessions) OnChange(fn func(n int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Create opens a new session for id.
func (s *Sessions) Create(id *models.Identity) *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		Identity:  *id,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.notify()
	return sess
}

// Get returns a live session. Expired sessions are removed on the way.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, id)
		s.notify()
		return nil, ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}

// Destroy ends a session. Destroying an unknown session is a no-op.
func (s *Sessions) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		s.notify()
	}
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.notify()
	}
	return removed
}

// Len returns the number of sessions held, expired ones included until swept.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// notify must be called with mu held.
func (s *Sessions) notify() {
	if s.onChange != nil {
		s.onChange(len(s.sessions))
	}
}
