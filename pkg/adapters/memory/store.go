// Package memory provides in-process adapters: the default session store
// and a challenge catalog backed by plain maps. Both are safe for
// concurrent use.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Kavithma17/Treasure-Hunt/internal/logging"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
	"github.com/Kavithma17/Treasure-Hunt/pkg/ports"
	"github.com/google/uuid"
)

// DefaultIdleTTL is how long a session may sit idle before the sweep
// drops it.
const DefaultIdleTTL = 2 * time.Hour

// DefaultSweepPeriod is how often the background sweep runs.
const DefaultSweepPeriod = 10 * time.Minute

// Store implements ports.SessionStore in memory. Sessions live for the
// process lifetime at most; an idle sweep evicts stale ones.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session

	clock  ports.Clock
	ttl    time.Duration
	logger *slog.Logger
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithClock injects a time source (tests use a fake).
func WithClock(clock ports.Clock) StoreOption {
	return func(s *Store) { s.clock = clock }
}

// WithIdleTTL overrides the idle eviction threshold.
func WithIdleTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// WithLogger sets a logger for sweep reporting.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an in-memory session store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*domain.Session),
		clock:    ports.SystemClock{},
		ttl:      DefaultIdleTTL,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new session under a fresh unguessable ID.
func (s *Store) Create(ctx context.Context, slots []string, ownerKey string) (*domain.Session, error) {
	session := domain.NewSession(uuid.NewString(), slots, ownerKey, s.clock.Now())

	s.mu.Lock()
	s.sessions[session.ID] = session.Clone()
	s.mu.Unlock()

	return session, nil
}

// Get returns a copy of the session and refreshes its idle clock.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	session.LastActivityAt = s.clock.Now()

	// Copy out so the caller cannot mutate stored state by pointer.
	return session.Clone(), nil
}

// Save replaces the stored session with the given one.
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	cp := session.Clone()
	cp.LastActivityAt = s.clock.Now()
	s.sessions[session.ID] = cp
	return nil
}

// Touch refreshes the idle clock without returning the session.
func (s *Store) Touch(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.LastActivityAt = s.clock.Now()
	return nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Count returns the number of live sessions.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// Sweep removes every session idle longer than the TTL and returns how
// many were dropped. Eviction is unconditional; in-progress hunts are
// not spared.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cleaned int
	for id, session := range s.sessions {
		if now.Sub(session.LastActivityAt) > s.ttl {
			delete(s.sessions, id)
			cleaned++
		}
	}
	if cleaned > 0 {
		s.logger.Info("evicted idle sessions", "count", cleaned)
	}
	return cleaned
}

// StartSweeper runs the eviction sweep on a fixed period until ctx is
// cancelled.
func (s *Store) StartSweeper(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = DefaultSweepPeriod
	}
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(s.clock.Now())
			}
		}
	}()
}
