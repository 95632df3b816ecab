package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// Catalog implements ports.Catalog over plain maps. It backs tests and
// the seed tooling; production content lives in the sqlite adapter.
type Catalog struct {
	mu         sync.RWMutex
	stages     map[string]domain.Stage
	challenges map[string]*domain.Challenge
	order      []string // challenge refs in insertion order, for stable FindUnused
}

// NewCatalog creates an empty in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		stages:     make(map[string]domain.Stage),
		challenges: make(map[string]*domain.Challenge),
	}
}

// LookupByRef returns the full challenge record, secrets included.
func (c *Catalog) LookupByRef(ctx context.Context, ref string) (*domain.Challenge, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	challenge, ok := c.challenges[ref]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	cp := *challenge
	return &cp, nil
}

// FindUnused returns the first active challenge of the given type whose
// ref is not excluded, in insertion order.
func (c *Catalog) FindUnused(ctx context.Context, typ domain.ChallengeType, exclude []string) (*domain.Challenge, error) {
	excluded := make(map[string]struct{}, len(exclude))
	for _, ref := range exclude {
		excluded[ref] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, ref := range c.order {
		challenge := c.challenges[ref]
		if challenge == nil || !challenge.Active || challenge.Type != typ {
			continue
		}
		if _, used := excluded[ref]; used {
			continue
		}
		cp := *challenge
		return &cp, nil
	}
	return nil, domain.ErrChallengeNotFound
}

// ActiveStages returns active stages ordered by code.
func (c *Catalog) ActiveStages(ctx context.Context) ([]domain.Stage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var stages []domain.Stage
	for _, stage := range c.stages {
		if stage.Active {
			stages = append(stages, stage)
		}
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].Code < stages[j].Code })
	return stages, nil
}

// ActiveByStage returns the active challenges of one stage, ordered by code.
func (c *Catalog) ActiveByStage(ctx context.Context, stageCode string) ([]*domain.Challenge, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*domain.Challenge
	for _, ref := range c.order {
		challenge := c.challenges[ref]
		if challenge == nil || !challenge.Active || challenge.StageCode != stageCode {
			continue
		}
		cp := *challenge
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ListStages returns all stages ordered by code.
func (c *Catalog) ListStages(ctx context.Context) ([]domain.Stage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stages := make([]domain.Stage, 0, len(c.stages))
	for _, stage := range c.stages {
		stages = append(stages, stage)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].Code < stages[j].Code })
	return stages, nil
}

// SaveStage inserts or replaces a stage keyed by code.
func (c *Catalog) SaveStage(ctx context.Context, stage domain.Stage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stages[stage.Code] = stage
	return nil
}

// DeleteStage removes a stage by code.
func (c *Catalog) DeleteStage(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.stages, code)
	return nil
}

// ListChallenges returns challenges, optionally filtered by stage,
// ordered by code.
func (c *Catalog) ListChallenges(ctx context.Context, stageCode string) ([]*domain.Challenge, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*domain.Challenge
	for _, ref := range c.order {
		challenge := c.challenges[ref]
		if challenge == nil {
			continue
		}
		if stageCode != "" && challenge.StageCode != stageCode {
			continue
		}
		cp := *challenge
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// SaveChallenge inserts or replaces a challenge. A missing Ref defaults
// to the challenge code.
func (c *Catalog) SaveChallenge(ctx context.Context, challenge *domain.Challenge) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := *challenge
	if cp.Ref == "" {
		cp.Ref = cp.Code
	}
	if _, exists := c.challenges[cp.Ref]; !exists {
		c.order = append(c.order, cp.Ref)
	}
	c.challenges[cp.Ref] = &cp
	return nil
}

// DeleteChallenge removes a challenge by code.
func (c *Catalog) DeleteChallenge(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for ref, challenge := range c.challenges {
		if challenge.Code == code {
			delete(c.challenges, ref)
			for i, r := range c.order {
				if r == ref {
					c.order = append(c.order[:i], c.order[i+1:]...)
					break
				}
			}
			return nil
		}
	}
	return nil
}
