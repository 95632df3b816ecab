package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Kavithma17/Treasure-Hunt/internal/logging"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
	"github.com/Kavithma17/Treasure-Hunt/pkg/ports"
)

// Engine enforces the hunt's security boundary: one challenge visible at
// a time, answers verified only against server-held data, a bounded
// substitution path, and a strictly monotonic cursor.
type Engine struct {
	store  ports.SessionStore
	repo   ports.ChallengeRepository
	clock  ports.Clock
	logger *slog.Logger
	locks  *sessionLocks
}

// Option configures the Engine.
type Option func(*Engine)

// WithClock injects a time source (tests use a fake).
func WithClock(clock ports.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an engine over the given session store and challenge
// repository.
func NewEngine(store ports.SessionStore, repo ports.ChallengeRepository, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		repo:   repo,
		clock:  ports.SystemClock{},
		logger: logging.NewNop(),
		locks:  newSessionLocks(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateSession registers a new session over a pre-selected ordered slot
// list. Slot selection itself is the caller's concern.
func (e *Engine) CreateSession(ctx context.Context, slots []string, ownerKey string) (*domain.Session, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: empty slot list", domain.ErrValidation)
	}
	for _, ref := range slots {
		if ref == "" {
			return nil, fmt.Errorf("%w: empty challenge ref", domain.ErrValidation)
		}
	}

	session, err := e.store.Create(ctx, slots, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	e.logger.Info("session created",
		"session_id", session.ID,
		"slots", len(session.Slots),
	)
	return session, nil
}

// RevealCurrent returns the safe projection of the session's current
// challenge. Any index other than the exact current one is denied; that
// single rule covers both replays of solved slots and peeking ahead.
// Read-only apart from the activity touch.
func (e *Engine) RevealCurrent(ctx context.Context, sessionID string, index int) (domain.SafeView, error) {
	if sessionID == "" {
		return domain.SafeView{}, fmt.Errorf("%w: missing session id", domain.ErrValidation)
	}
	if index < 0 {
		return domain.SafeView{}, fmt.Errorf("%w: negative index", domain.ErrValidation)
	}

	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return domain.SafeView{}, err
	}

	if session.Completed || index != session.CurrentIndex {
		e.logger.Warn("reveal denied",
			"session_id", sessionID,
			"requested", index,
			"current", session.CurrentIndex,
		)
		return domain.SafeView{}, domain.ErrIndexMismatch
	}

	challenge, err := e.repo.LookupByRef(ctx, session.Slots[index])
	if err != nil {
		return domain.SafeView{}, fmt.Errorf("resolve current challenge: %w", err)
	}

	return domain.SafeProject(challenge, index+1), nil
}

// Verify checks a submitted answer against the current slot and advances
// the session on success. Preconditions are checked in a fixed order,
// each with its own failure mode; the attempt is logged before any
// progress change; all mutations land in one Save so a failure applies
// nothing.
func (e *Engine) Verify(ctx context.Context, sessionID, ref string, index int, answer string) (domain.VerifyResult, error) {
	if sessionID == "" || ref == "" {
		return domain.VerifyResult{}, fmt.Errorf("%w: missing identifiers", domain.ErrValidation)
	}
	if index < 0 {
		return domain.VerifyResult{}, fmt.Errorf("%w: negative index", domain.ErrValidation)
	}
	if answer == "" {
		return domain.VerifyResult{}, fmt.Errorf("%w: empty answer", domain.ErrValidation)
	}

	var result domain.VerifyResult
	err := e.locks.withLock(sessionID, func() error {
		session, err := e.store.Get(ctx, sessionID)
		if err != nil {
			return err
		}

		// A completed session has no valid current index.
		if session.Completed || index != session.CurrentIndex {
			e.logger.Warn("verify denied: index mismatch",
				"session_id", sessionID,
				"claimed", index,
				"current", session.CurrentIndex,
			)
			return domain.ErrIndexMismatch
		}
		if session.IsSolved(index) {
			e.logger.Warn("verify denied: replay on solved slot",
				"session_id", sessionID,
				"index", index,
			)
			return domain.ErrAlreadyAnswered
		}

		// The caller's ref must name the challenge actually occupying the
		// slot; anything else is treated as not-found so verification
		// never runs against data the session does not hold.
		if ref != session.Slots[index] {
			return domain.ErrChallengeNotFound
		}
		challenge, err := e.repo.LookupByRef(ctx, ref)
		if err != nil {
			return err
		}

		correct := CheckAnswer(challenge, answer)
		now := e.clock.Now()

		session.Attempts = append(session.Attempts, domain.Attempt{
			Index:     index,
			Ref:       ref,
			Answer:    answer,
			Correct:   correct,
			Timestamp: now,
		})

		if correct {
			session.Solved[index] = struct{}{}
			session.CurrentIndex++
			if session.CurrentIndex == len(session.Slots) {
				session.Completed = true
				session.CompletionElapsed = now.Sub(session.StartedAt)
			}
		}

		if err := e.store.Save(ctx, session); err != nil {
			// Evicted mid-operation: fail closed, nothing applied.
			return err
		}

		result = domain.VerifyResult{
			Correct:     correct,
			CanProgress: correct,
			Completed:   session.Completed,
		}
		if session.Completed {
			result.CompletionElapsed = session.CompletionElapsed
		}

		e.logger.Info("answer verified",
			"session_id", sessionID,
			"index", index,
			"correct", correct,
			"completed", session.Completed,
		)
		return nil
	})
	if err != nil {
		return domain.VerifyResult{}, err
	}
	return result, nil
}

// Substitute replaces the current slot's challenge with an unused one
// after a failed attempt. Eligibility follows the slot's original type:
// a slot that started as a choice challenge swaps to fill-in-the-blank
// and stays swappable after the first swap; any other original type is
// a no-op returning the unchanged current view. Every search excludes
// every ref already in the session, including the current slot's own,
// so no challenge is ever handed out twice within one session.
func (e *Engine) Substitute(ctx context.Context, sessionID string, index int) (domain.SafeView, error) {
	if sessionID == "" {
		return domain.SafeView{}, fmt.Errorf("%w: missing session id", domain.ErrValidation)
	}
	if index < 0 {
		return domain.SafeView{}, fmt.Errorf("%w: negative index", domain.ErrValidation)
	}

	var view domain.SafeView
	err := e.locks.withLock(sessionID, func() error {
		session, err := e.store.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		if session.Completed || index != session.CurrentIndex {
			e.logger.Warn("substitute denied: index mismatch",
				"session_id", sessionID,
				"claimed", index,
				"current", session.CurrentIndex,
			)
			return domain.ErrIndexMismatch
		}

		current, err := e.repo.LookupByRef(ctx, session.Slots[index])
		if err != nil {
			return err
		}

		// A slot that has already been swapped carries its pre-swap type;
		// eligibility and the fallback search both key off that.
		swapType := current.Type
		if orig, ok := session.OriginalTypes[index]; ok {
			swapType = orig
		}
		if swapType != domain.TypeMCQ {
			// Not swappable; hand back the unchanged current view.
			view = domain.SafeProject(current, index+1)
			return nil
		}

		// Exclude everything the session has ever held, not just the
		// current slots, so a previously shown alternate never comes back.
		exclude := make([]string, 0, len(session.UsedRefs)+len(session.Slots))
		for ref := range session.UsedRefs {
			exclude = append(exclude, ref)
		}
		for _, ref := range session.Slots {
			if _, ok := session.UsedRefs[ref]; !ok {
				exclude = append(exclude, ref)
			}
		}

		alternate, err := e.repo.FindUnused(ctx, domain.TypeFIB, exclude)
		if errors.Is(err, domain.ErrChallengeNotFound) {
			// Fall back to the slot's original type, still excluding
			// everything the session has seen.
			alternate, err = e.repo.FindUnused(ctx, swapType, exclude)
		}
		if errors.Is(err, domain.ErrChallengeNotFound) {
			return domain.ErrNoAlternate
		}
		if err != nil {
			return fmt.Errorf("find alternate: %w", err)
		}

		if session.OriginalTypes == nil {
			session.OriginalTypes = make(map[int]domain.ChallengeType)
		}
		if _, ok := session.OriginalTypes[index]; !ok {
			session.OriginalTypes[index] = current.Type
		}
		session.Slots[index] = alternate.Ref
		if session.UsedRefs == nil {
			session.UsedRefs = make(map[string]struct{})
		}
		session.UsedRefs[alternate.Ref] = struct{}{}
		if err := e.store.Save(ctx, session); err != nil {
			return err
		}

		e.logger.Info("challenge substituted",
			"session_id", sessionID,
			"index", index,
			"from", current.Ref,
			"to", alternate.Ref,
		)
		view = domain.SafeProject(alternate, index+1)
		return nil
	})
	if err != nil {
		return domain.SafeView{}, err
	}
	return view, nil
}

// ResumeInfo summarizes a session's progress for a reconnecting client.
func (e *Engine) ResumeInfo(ctx context.Context, sessionID string) (domain.ResumeInfo, error) {
	if sessionID == "" {
		return domain.ResumeInfo{}, fmt.Errorf("%w: missing session id", domain.ErrValidation)
	}

	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return domain.ResumeInfo{}, err
	}

	return domain.ResumeInfo{
		TotalSlots:   len(session.Slots),
		CurrentIndex: session.CurrentIndex,
		SolvedCount:  len(session.Solved),
		Completed:    session.Completed,
		StartedAt:    session.StartedAt,
	}, nil
}
