package domain

import "time"

// Attempt is one entry of a session's append-only attempt log. The log
// is audit data; correctness logic never reads from it.
type Attempt struct {
	Index     int       `json:"index"`
	Ref       string    `json:"ref"`
	Answer    string    `json:"answer"`
	Correct   bool      `json:"correct"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one participant's run through an ordered challenge
// sequence. The session ID is the sole capability to act on it.
//
// Invariants maintained by the engine:
//   - 0 <= CurrentIndex <= len(Slots)
//   - every index below CurrentIndex is in Solved, nothing else is
//   - Completed iff CurrentIndex == len(Slots)
//   - CompletionElapsed is set exactly once, when Completed flips true
type Session struct {
	ID                string           `json:"id"`
	Slots             []string         `json:"slots"`
	CurrentIndex      int              `json:"current_index"`
	Solved            map[int]struct{} `json:"solved"`
	Attempts          []Attempt        `json:"attempts"`
	StartedAt         time.Time        `json:"started_at"`
	LastActivityAt    time.Time        `json:"last_activity_at"`
	Completed         bool             `json:"completed"`
	CompletionElapsed time.Duration    `json:"completion_elapsed"`

	// UsedRefs holds every challenge ref that has ever occupied a slot,
	// including ones substituted away. Substitution excludes all of them
	// so no challenge is handed out twice within one session.
	UsedRefs map[string]struct{} `json:"used_refs"`

	// OriginalTypes records, per slot that has been substituted, the type
	// the slot held before its first swap. Swap eligibility follows the
	// original type, so a choice slot stays swappable after receiving a
	// fill-in-the-blank alternate.
	OriginalTypes map[int]ChallengeType `json:"original_types,omitempty"`

	// OwnerKey ties the session to a player for bookkeeping only; it is
	// not an access-control credential.
	OwnerKey string `json:"owner_key,omitempty"`
}

// NewSession creates a fresh session over the given slots, cursor at zero.
func NewSession(id string, slots []string, ownerKey string, now time.Time) *Session {
	used := make(map[string]struct{}, len(slots))
	for _, ref := range slots {
		used[ref] = struct{}{}
	}
	return &Session{
		ID:             id,
		Slots:          append([]string(nil), slots...),
		Solved:         make(map[int]struct{}),
		UsedRefs:       used,
		StartedAt:      now,
		LastActivityAt: now,
		OwnerKey:       ownerKey,
	}
}

// IsSolved reports whether slot index has already been answered correctly.
func (s *Session) IsSolved(index int) bool {
	_, ok := s.Solved[index]
	return ok
}

// HasSlot reports whether ref occupies any slot of the session.
func (s *Session) HasSlot(ref string) bool {
	for _, r := range s.Slots {
		if r == ref {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so stores can hand out sessions without
// sharing internal state with callers.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Slots = append([]string(nil), s.Slots...)
	cp.Attempts = append([]Attempt(nil), s.Attempts...)
	cp.Solved = make(map[int]struct{}, len(s.Solved))
	for k := range s.Solved {
		cp.Solved[k] = struct{}{}
	}
	cp.UsedRefs = make(map[string]struct{}, len(s.UsedRefs))
	for k := range s.UsedRefs {
		cp.UsedRefs[k] = struct{}{}
	}
	if s.OriginalTypes != nil {
		cp.OriginalTypes = make(map[int]ChallengeType, len(s.OriginalTypes))
		for k, v := range s.OriginalTypes {
			cp.OriginalTypes[k] = v
		}
	}
	return &cp
}

// ResumeInfo is the progress summary handed to a reconnecting client.
type ResumeInfo struct {
	TotalSlots   int       `json:"total_slots"`
	CurrentIndex int       `json:"current_index"`
	SolvedCount  int       `json:"solved_count"`
	Completed    bool      `json:"completed"`
	StartedAt    time.Time `json:"started_at"`
}
