package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/Kavithma17/Treasure-Hunt/internal/testutils"
	"github.com/Kavithma17/Treasure-Hunt/pkg/adapters/memory"
	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
	"github.com/Kavithma17/Treasure-Hunt/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}

func TestMemoryStore_IdleEviction(t *testing.T) {
	ctx := context.Background()
	clock := testutils.NewClock(time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore(
		memory.WithClock(clock),
		memory.WithIdleTTL(2*time.Hour),
	)

	idle, err := store.Create(ctx, []string{"q1"}, "")
	require.NoError(t, err)
	active, err := store.Create(ctx, []string{"q2"}, "")
	require.NoError(t, err)

	// Touch one session just inside the TTL, leave the other idle.
	clock.Advance(2 * time.Hour)
	require.NoError(t, store.Touch(ctx, active.ID))
	clock.Advance(time.Minute)

	cleaned := store.Sweep(clock.Now())
	assert.Equal(t, 1, cleaned)

	_, err = store.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "idle session must be unreachable after the sweep")

	_, err = store.Get(ctx, active.ID)
	assert.NoError(t, err, "recently touched session must survive the sweep")
}

func TestMemoryStore_GetRefreshesIdleClock(t *testing.T) {
	ctx := context.Background()
	clock := testutils.NewClock(time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore(
		memory.WithClock(clock),
		memory.WithIdleTTL(time.Hour),
	)

	session, err := store.Create(ctx, []string{"q1"}, "")
	require.NoError(t, err)

	// A lookup counts as activity, so sweeping one TTL after the lookup
	// must not evict.
	clock.Advance(59 * time.Minute)
	_, err = store.Get(ctx, session.ID)
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	assert.Equal(t, 0, store.Sweep(clock.Now()))

	_, err = store.Get(ctx, session.ID)
	assert.NoError(t, err)
}

func TestMemoryStore_SaveUnknownSession(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	ghost := domain.NewSession("ghost", []string{"q1"}, "", time.Now())
	err := store.Save(ctx, ghost)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "saving an evicted session must fail closed")
}
