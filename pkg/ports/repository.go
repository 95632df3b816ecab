package ports

import (
	"context"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// ChallengeRepository is the engine's read-only view of challenge
// content. The engine treats it as a pure lookup; it never writes.
type ChallengeRepository interface {
	// LookupByRef returns the full challenge record, secrets included.
	// Returns domain.ErrChallengeNotFound if ref does not resolve.
	LookupByRef(ctx context.Context, ref string) (*domain.Challenge, error)

	// FindUnused returns an active challenge of the given type whose ref
	// is not in exclude, or domain.ErrChallengeNotFound if none exists.
	// Used by the substitution protocol.
	FindUnused(ctx context.Context, typ domain.ChallengeType, exclude []string) (*domain.Challenge, error)
}

// Catalog is the authoring and selection surface over challenge content,
// consumed by the HTTP adapter (hunt start, admin CRUD) but not by the
// engine itself.
type Catalog interface {
	ChallengeRepository

	// ActiveStages returns active stages ordered by code.
	ActiveStages(ctx context.Context) ([]domain.Stage, error)

	// ActiveByStage returns the active challenges belonging to a stage.
	ActiveByStage(ctx context.Context, stageCode string) ([]*domain.Challenge, error)

	ListStages(ctx context.Context) ([]domain.Stage, error)
	SaveStage(ctx context.Context, stage domain.Stage) error
	DeleteStage(ctx context.Context, code string) error

	ListChallenges(ctx context.Context, stageCode string) ([]*domain.Challenge, error)
	SaveChallenge(ctx context.Context, c *domain.Challenge) error
	DeleteChallenge(ctx context.Context, code string) error
}

// PlayerStore persists registered players.
type PlayerStore interface {
	// CreatePlayer registers a player. Returns domain.ErrPlayerExists if
	// the name (case-insensitive) is taken.
	CreatePlayer(ctx context.Context, p *domain.Player) error

	// FindPlayer looks a player up by case-insensitive name.
	// Returns domain.ErrPlayerNotFound if absent.
	FindPlayer(ctx context.Context, name string) (*domain.Player, error)

	// KeyTaken reports whether a generated key is already assigned.
	KeyTaken(ctx context.Context, key string) (bool, error)
}

// Leaderboard records finish times, fastest first.
type Leaderboard interface {
	SubmitScore(ctx context.Context, entry domain.ScoreEntry) error
	TopScores(ctx context.Context, limit int) ([]domain.ScoreEntry, error)
}
