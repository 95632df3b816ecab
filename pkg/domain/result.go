package domain

import "time"

// VerifyResult is the verification engine's answer to one submission.
// Correctness is always computed server-side; there is no field a caller
// can set to claim success.
type VerifyResult struct {
	Correct     bool `json:"correct"`
	CanProgress bool `json:"canProgress"`
	Completed   bool `json:"completed"`

	// CompletionElapsed is non-zero only on the call that completed the
	// hunt (and on any later resume reads of the finished session).
	CompletionElapsed time.Duration `json:"completionElapsed,omitempty"`
}

// LegacyResult is the outcome of the non-progressive submission path.
// On a correct answer mid-hunt, Next carries the following challenge so
// old clients need no separate reveal call.
type LegacyResult struct {
	Correct bool      `json:"correct"`
	Done    bool      `json:"done"`
	Next    *SafeView `json:"nextQuestion,omitempty"`
}
