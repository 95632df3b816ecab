package domain

import (
	"errors"
	"time"
)

// ErrPlayerExists is returned when registering a name that is taken
// (case-insensitive).
var ErrPlayerExists = errors.New("player name already registered")

// ErrPlayerNotFound is returned on login with an unknown name or a key
// that does not match.
var ErrPlayerNotFound = errors.New("player not found")

// Player is a registered participant. The two-word Key doubles as the
// login credential; names are unique case-insensitively.
type Player struct {
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScoreEntry is one leaderboard row. Lower TimeTaken ranks higher.
type ScoreEntry struct {
	PlayerName string        `json:"playerName"`
	TimeTaken  time.Duration `json:"timeTaken"`
	FinishedAt time.Time     `json:"finishedAt"`
}
