package game

import (
	"context"
	"fmt"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// LegacyAnswer is the pre-progressive submission path kept for old
// clients. It verifies against any challenge the caller names, without
// the slot-match and replay checks the hardened path enforces, so it
// carries none of that path's guarantees. It still runs under the
// session lock and keeps the cursor invariants intact, and on success
// it returns the next challenge's safe view directly.
func (e *Engine) LegacyAnswer(ctx context.Context, sessionID, ref, answer string) (domain.LegacyResult, error) {
	if sessionID == "" || ref == "" {
		return domain.LegacyResult{}, fmt.Errorf("%w: missing identifiers", domain.ErrValidation)
	}

	var result domain.LegacyResult
	err := e.locks.withLock(sessionID, func() error {
		session, err := e.store.Get(ctx, sessionID)
		if err != nil {
			return err
		}

		challenge, err := e.repo.LookupByRef(ctx, ref)
		if err != nil {
			return err
		}

		correct := CheckAnswer(challenge, answer)
		now := e.clock.Now()

		session.Attempts = append(session.Attempts, domain.Attempt{
			Index:     session.CurrentIndex,
			Ref:       ref,
			Answer:    answer,
			Correct:   correct,
			Timestamp: now,
		})

		if correct && !session.Completed {
			session.Solved[session.CurrentIndex] = struct{}{}
			session.CurrentIndex++
			if session.CurrentIndex == len(session.Slots) {
				session.Completed = true
				session.CompletionElapsed = now.Sub(session.StartedAt)
			}
		}

		if err := e.store.Save(ctx, session); err != nil {
			return err
		}

		result = domain.LegacyResult{
			Correct: correct,
			Done:    session.Completed,
		}
		if correct && !session.Completed {
			next, err := e.repo.LookupByRef(ctx, session.Slots[session.CurrentIndex])
			if err != nil {
				return fmt.Errorf("resolve next challenge: %w", err)
			}
			view := domain.SafeProject(next, session.CurrentIndex+1)
			result.Next = &view
		}
		return nil
	})
	if err != nil {
		return domain.LegacyResult{}, err
	}
	return result, nil
}
