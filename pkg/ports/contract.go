package ports

import (
	"context"
	"testing"
	"time"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests verifying that a
// SessionStore implementation adheres to the interface contract. Both the
// memory and Redis adapters run this same suite.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	slots := []string{"ref-a", "ref-b", "ref-c"}

	t.Run("Create and Get", func(t *testing.T) {
		created, err := store.Create(ctx, slots, "MIGHTY-MANGO")
		require.NoError(t, err, "Create should not return error")
		require.NotEmpty(t, created.ID, "Create must assign an ID")

		loaded, err := store.Get(ctx, created.ID)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, slots, loaded.Slots)
		assert.Equal(t, 0, loaded.CurrentIndex)
		assert.Equal(t, "MIGHTY-MANGO", loaded.OwnerKey)
		assert.False(t, loaded.Completed)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "no-such-session")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Save mutation round-trips", func(t *testing.T) {
		created, err := store.Create(ctx, slots, "")
		require.NoError(t, err)

		created.CurrentIndex = 1
		created.Solved[0] = struct{}{}
		created.Attempts = append(created.Attempts, domain.Attempt{
			Index: 0, Ref: "ref-a", Answer: "x", Correct: true, Timestamp: time.Now().UTC(),
		})
		created.OriginalTypes = map[int]domain.ChallengeType{1: domain.TypeMCQ}
		require.NoError(t, store.Save(ctx, created))

		loaded, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.CurrentIndex)
		assert.True(t, loaded.IsSolved(0))
		require.Len(t, loaded.Attempts, 1)
		assert.Equal(t, "ref-a", loaded.Attempts[0].Ref)
		assert.Equal(t, domain.TypeMCQ, loaded.OriginalTypes[1])
	})

	t.Run("Isolation", func(t *testing.T) {
		created, err := store.Create(ctx, slots, "")
		require.NoError(t, err)

		loaded, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		loaded.Slots[0] = "tampered"
		loaded.Solved[7] = struct{}{}

		again, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "ref-a", again.Slots[0], "caller mutations must not reach the store")
		assert.False(t, again.IsSolved(7))
	})

	t.Run("Touch unknown session", func(t *testing.T) {
		err := store.Touch(ctx, "no-such-session")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		created, err := store.Create(ctx, slots, "")
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, created.ID))

		_, err = store.Get(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Get after Delete should return ErrSessionNotFound")
	})

	t.Run("Count", func(t *testing.T) {
		before, err := store.Count(ctx)
		require.NoError(t, err)

		created, err := store.Create(ctx, slots, "")
		require.NoError(t, err)
		defer func() { _ = store.Delete(ctx, created.ID) }()

		after, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})
}
