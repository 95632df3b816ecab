package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// Players implements ports.PlayerStore over a map keyed by lowercased
// name. Names are unique case-insensitively, matching the sqlite
// adapter's constraint.
type Players struct {
	mu     sync.RWMutex
	byName map[string]*domain.Player
	keys   map[string]struct{}
}

// NewPlayers creates an empty in-memory player store.
func NewPlayers() *Players {
	return &Players{
		byName: make(map[string]*domain.Player),
		keys:   make(map[string]struct{}),
	}
}

func (p *Players) CreatePlayer(ctx context.Context, player *domain.Player) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	lower := strings.ToLower(player.Name)
	if _, exists := p.byName[lower]; exists {
		return domain.ErrPlayerExists
	}
	cp := *player
	p.byName[lower] = &cp
	p.keys[player.Key] = struct{}{}
	return nil
}

func (p *Players) FindPlayer(ctx context.Context, name string) (*domain.Player, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	player, ok := p.byName[strings.ToLower(name)]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (p *Players) KeyTaken(ctx context.Context, key string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, taken := p.keys[key]
	return taken, nil
}

// Leaderboard implements ports.Leaderboard in memory, fastest finish
// first.
type Leaderboard struct {
	mu      sync.RWMutex
	entries []domain.ScoreEntry
}

// NewLeaderboard creates an empty in-memory leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{}
}

func (l *Leaderboard) SubmitScore(ctx context.Context, entry domain.ScoreEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	return nil
}

func (l *Leaderboard) TopScores(ctx context.Context, limit int) ([]domain.ScoreEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := append([]domain.ScoreEntry(nil), l.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TimeTaken < out[j].TimeTaken })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
