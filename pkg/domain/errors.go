package domain

import "errors"

// ErrSessionNotFound is returned when a session ID is unknown or has been
// evicted. The caller must start a new hunt; nothing is retried.
var ErrSessionNotFound = errors.New("session not found")

// ErrIndexMismatch is returned when a request targets a slot other than
// the current one, covering both replays of solved slots and attempts to
// peek ahead.
var ErrIndexMismatch = errors.New("index does not match current slot")

// ErrAlreadyAnswered is returned on a duplicate success claim against a
// slot that is already solved.
var ErrAlreadyAnswered = errors.New("challenge already answered")

// ErrChallengeNotFound is returned when a challenge reference does not
// resolve in the repository. For verification this includes a caller ref
// that differs from the session's current slot.
var ErrChallengeNotFound = errors.New("challenge not found")

// ErrNoAlternate is returned when the substitution pool is exhausted;
// the session keeps its current challenge and is never deadlocked.
var ErrNoAlternate = errors.New("no alternate challenge available")

// ErrValidation is returned for malformed input, rejected before any
// session state is touched.
var ErrValidation = errors.New("invalid input")
