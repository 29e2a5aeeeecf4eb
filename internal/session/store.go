package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 12 * time.Hour

// Store keeps sessions in memory, keyed by id.
//
// The store serialises access to its map, not to a session: two requests sharing a
// session id may interleave their read-modify-write cycles and the last Update wins.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *slog.Logger
	clock    clock.Clock
	ttl      time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used by the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces the clock used to stamp and expire sessions.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithTTL sets the idle time after which a session is discarded. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// NewStore returns an empty session store.
func NewStore(opts ...Option) *Store {
	_inst := &Store{
		sessions: make(map[string]*Session),
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.clock == nil {
		_inst.clock = clock.New()
	}
	return _inst
}

// Create registers a new empty session.
func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	sess := &Session{
		ID:        uuid.NewString(),
		UpdatedAt: s.clock.Now(),
	}
	s.sessions[sess.ID] = sess
	s.logger.Debug("session created", "session", sess.ID)
	return sess.clone()
}

// Get returns a copy of the session with the given id.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, found := s.sessions[id]
	if !found || s.expired(sess) {
		return Session{}, false
	}
	return sess.clone(), true
}

// Resolve returns the session with the given id, creating a fresh one when the id is
// empty, unknown or expired. The boolean reports whether a new session was created.
func (s *Store) Resolve(id string) (Session, bool) {
	if id != "" {
		if sess, found := s.Get(id); found {
			return sess, false
		}
		s.logger.Debug("unknown session, creating a new one", "session", id)
	}
	return s.Create(), true
}

// Update stores sess, replacing whatever was stored under its id.
func (s *Store) Update(sess Session) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess = sess.clone()
	sess.UpdatedAt = s.clock.Now()
	s.sessions[sess.ID] = &sess
	return sess.clone()
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.clock.Since(sess.UpdatedAt) > s.ttl
}

// sweep must be called with mu held.
func (s *Store) sweep() {
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			s.logger.Debug("session expired", "session", id)
		}
	}
}
