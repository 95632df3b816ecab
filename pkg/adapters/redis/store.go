// Package redis provides a Redis-backed session store for multi-process
// deployments. Idle eviction rides on native key TTLs: every touch
// refreshes the expiry, so no sweep goroutine is needed.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kavithma17/Treasure-Hunt/internal/logging"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// DefaultIdleTTL mirrors the memory adapter's idle threshold.
const DefaultIdleTTL = 2 * time.Hour

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithIdleTTL sets the idle expiration for sessions.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithLogger sets the logger for non-fatal store events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a Redis store connected to the given address.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "hunt:session:",
		ttl:    DefaultIdleTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

// Create registers a new session under a fresh ID.
func (s *Store) Create(ctx context.Context, slots []string, ownerKey string) (*domain.Session, error) {
	session := domain.NewSession(uuid.NewString(), slots, ownerKey, time.Now().UTC())

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("save to redis: %w", err)
	}
	return session, nil
}

// Get retrieves the session and refreshes its TTL (activity touch).
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get from redis: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if session.Solved == nil {
		session.Solved = make(map[int]struct{})
	}
	if session.UsedRefs == nil {
		session.UsedRefs = make(map[string]struct{})
	}

	// Refresh expiry; the key may race an eviction but a later Save will
	// then fail closed, so a failure here is logged rather than returned.
	if err := s.client.Expire(ctx, s.key(sessionID), s.ttl).Err(); err != nil {
		s.logger.Warn("session ttl refresh failed",
			"session_id", sessionID,
			"error", err,
		)
	}

	return &session, nil
}

// Save persists a mutated session only if it still exists.
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// XX: only overwrite a live key, so an evicted session stays evicted.
	ok, err := s.client.SetXX(ctx, s.key(session.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("save to redis: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Touch refreshes the session's TTL.
func (s *Store) Touch(ctx context.Context, sessionID string) error {
	ok, err := s.client.Expire(ctx, s.key(sessionID), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("touch in redis: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete from redis: %w", err)
	}
	return nil
}

// Count scans the session keyspace and returns the number of live
// sessions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		count  int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("scan redis: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
