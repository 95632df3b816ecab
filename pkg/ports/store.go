package ports

import (
	"context"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// SessionStore defines the registry of active hunt sessions. Sessions are
// ephemeral by design: implementations evict entries whose idle time
// exceeds a fixed TTL, and a request against an evicted ID gets
// domain.ErrSessionNotFound.
type SessionStore interface {
	// Create generates a fresh unguessable session ID and registers a new
	// session over the given slots with the cursor at zero.
	Create(ctx context.Context, slots []string, ownerKey string) (*domain.Session, error)

	// Get retrieves a session by ID. Every successful lookup counts as
	// activity and refreshes the idle clock.
	// Returns domain.ErrSessionNotFound if the ID is unknown or evicted.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// Save persists a mutated session and refreshes its idle clock.
	// Returns domain.ErrSessionNotFound if the session vanished (evicted
	// mid-operation); callers treat that as if the whole operation had
	// observed a missing session.
	Save(ctx context.Context, session *domain.Session) error

	// Touch refreshes the idle clock without returning the session.
	Touch(ctx context.Context, sessionID string) error

	// Delete removes the session.
	Delete(ctx context.Context, sessionID string) error

	// Count returns the number of live sessions (health reporting).
	Count(ctx context.Context) (int, error)
}
