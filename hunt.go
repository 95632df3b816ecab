package hunt

import (
	"context"
	"log/slog"

	"github.com/Kavithma17/Treasure-Hunt/internal/game"
	"github.com/Kavithma17/Treasure-Hunt/internal/logging"
	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/memory"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
	"github.com/Kavithma17/Treasure-Hunt/pkg/ports"
)

// Version is the library version, overridable at build time.
var Version = "0.1.0"

// Hunt is the high-level entry point for the library. It wraps the
// internal engine and provides a simplified API for consumers; the
// HTTP adapter and the command line both sit on top of it.
type Hunt struct {
	engine  *game.Engine
	store   ports.SessionStore
	catalog ports.Catalog
	clock   ports.Clock
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Hunt.
type Option func(*Hunt)

// WithSessionStore injects a session store, replacing the in-memory
// default. Use the redis adapter for multi-instance deployments.
func WithSessionStore(store ports.SessionStore) Option {
	return func(h *Hunt) { h.store = store }
}

// WithCatalog injects a challenge catalog, replacing the in-memory
// default. Use the sqlite adapter for persistent content.
func WithCatalog(catalog ports.Catalog) Option {
	return func(h *Hunt) { h.catalog = catalog }
}

// WithClock injects a time source.
func WithClock(clock ports.Clock) Option {
	return func(h *Hunt) { h.clock = clock }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hunt) { h.logger = logger }
}

// New initializes a Hunt. Without options everything lives in memory,
// which suits tests and single-process deployments.
func New(opts ...Option) *Hunt {
	h := &Hunt{}
	for _, opt := range opts {
		opt(h)
	}

	if h.clock == nil {
		h.clock = ports.SystemClock{}
	}
	if h.logger == nil {
		h.logger = logging.NewNop()
	}
	if h.store == nil {
		h.store = memory.NewStore(memory.WithClock(h.clock))
	}
	if h.catalog == nil {
		h.catalog = memory.NewCatalog()
	}

	h.engine = game.NewEngine(h.store, h.catalog,
		game.WithClock(h.clock),
		game.WithLogger(h.logger),
	)
	return h
}

// Start opens a session over the given ordered challenge refs.
func (h *Hunt) Start(ctx context.Context, slots []string, ownerKey string) (*domain.Session, error) {
	return h.engine.CreateSession(ctx, slots, ownerKey)
}

// Reveal returns the safe projection of the session's current
// challenge. Indexes other than the current one are denied.
func (h *Hunt) Reveal(ctx context.Context, sessionID string, index int) (domain.SafeView, error) {
	return h.engine.RevealCurrent(ctx, sessionID, index)
}

// Verify checks an answer against the current challenge and advances
// the session when it is correct.
func (h *Hunt) Verify(ctx context.Context, sessionID, ref string, index int, answer string) (domain.VerifyResult, error) {
	return h.engine.Verify(ctx, sessionID, ref, index, answer)
}

// Substitute swaps the current choice challenge for an unused
// alternate. Non-choice challenges are returned unchanged.
func (h *Hunt) Substitute(ctx context.Context, sessionID string, index int) (domain.SafeView, error) {
	return h.engine.Substitute(ctx, sessionID, index)
}

// Resume summarizes a session's progress for a reconnecting client.
func (h *Hunt) Resume(ctx context.Context, sessionID string) (domain.ResumeInfo, error) {
	return h.engine.ResumeInfo(ctx, sessionID)
}

// Engine exposes the underlying engine for adapters that need the full
// surface, such as the HTTP server.
func (h *Hunt) Engine() *game.Engine {
	return h.engine
}

// Catalog returns the backing challenge catalog.
func (h *Hunt) Catalog() ports.Catalog {
	return h.catalog
}

// Sessions returns the backing session store.
func (h *Hunt) Sessions() ports.SessionStore {
	return h.store
}
