package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/dexsearch/internal/ui"
)

// DefaultTTL is how long an idle session is kept
const DefaultTTL = 30 * time.Minute

type entry struct {
	session  *ui.Session
	lastSeen time.Time
}

// SessionStore keeps browser sessions in memory until they have been idle
// for longer than the TTL
type SessionStore struct {
	sessions map[string]*entry
	loc      *ui.Localizer
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

func New(loc *ui.Localizer, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionStore{
		sessions: make(map[string]*entry),
		loc:      loc,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a live session and marks it as seen. Expired sessions are
// removed and reported as missing.
func (s *SessionStore) Get(sessionID string) (*ui.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, sessionID)
		return nil, false
	}
	e.lastSeen = now
	return e.session, true
}

// Create registers a new session with a fresh ID
func (s *SessionStore) Create() *ui.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	session := ui.NewSession(uuid.NewString(), s.loc)
	s.sessions[session.ID] = &entry{session: session, lastSeen: now}
	return session
}

// GetOrCreate returns the session for sessionID, creating one when it is unknown.
// The bool reports whether a new session was created.
func (s *SessionStore) GetOrCreate(sessionID string) (*ui.Session, bool) {
	if session, ok := s.Get(sessionID); ok {
		return session, false
	}
	return s.Create(), true
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Sweep removes every expired session and returns how many were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
			slog.Debug("Evicted idle session", "session_id", id, "age", now.Sub(e.session.CreatedAt))
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Info("Evicted idle sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}

func (s *SessionStore) expired(e *entry, now time.Time) bool {
	return now.Sub(e.lastSeen) > s.ttl
}
