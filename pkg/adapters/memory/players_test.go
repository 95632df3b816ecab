package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

func TestPlayersCaseInsensitiveNames(t *testing.T) {
	players := NewPlayers()
	ctx := context.Background()

	require.NoError(t, players.CreatePlayer(ctx, &domain.Player{Name: "Asha", Key: "MIGHTY-MANGO"}))

	err := players.CreatePlayer(ctx, &domain.Player{Name: "ASHA", Key: "SNEAKY-OTTER"})
	assert.ErrorIs(t, err, domain.ErrPlayerExists)

	found, err := players.FindPlayer(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, "Asha", found.Name)
	assert.Equal(t, "MIGHTY-MANGO", found.Key)

	_, err = players.FindPlayer(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestPlayersKeyTaken(t *testing.T) {
	players := NewPlayers()
	ctx := context.Background()

	taken, err := players.KeyTaken(ctx, "MIGHTY-MANGO")
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, players.CreatePlayer(ctx, &domain.Player{Name: "Asha", Key: "MIGHTY-MANGO"}))

	taken, err = players.KeyTaken(ctx, "MIGHTY-MANGO")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestLeaderboardOrdersAndLimits(t *testing.T) {
	board := NewLeaderboard()
	ctx := context.Background()

	times := []time.Duration{9 * time.Minute, 3 * time.Minute, 6 * time.Minute}
	names := []string{"slow", "fast", "mid"}
	for i, d := range times {
		require.NoError(t, board.SubmitScore(ctx, domain.ScoreEntry{
			PlayerName: names[i],
			TimeTaken:  d,
		}))
	}

	top, err := board.TopScores(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "fast", top[0].PlayerName)
	assert.Equal(t, "mid", top[1].PlayerName)
}
