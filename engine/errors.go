// Package engine holds the challenge and match lifecycle state machines,
// ledger math and the derived view predicates as pure functions over the
// model records. It never talks to the database: callers fetch the current
// row, apply a transition here, and persist the result with a conditional
// update so a stale read can never clobber a concurrent transition.
package engine

import "errors"

// Validation errors — malformed input, rejected before any write.
var ErrSelfChallenge = errors.New("cannot challenge yourself")
var ErrInvalidResponse = errors.New("response must be accepted, declined or cancelled")
var ErrNotParticipant = errors.New("player is not part of this match")
var ErrNegativeScore = errors.New("scores must be non-negative")
var ErrTiedScore = errors.New("tied scores are not allowed")
var ErrWinnerMismatch = errors.New("winner must be the player with the higher score")
var ErrOwnSubmission = errors.New("cannot confirm your own score submission")
var ErrInvalidAmount = errors.New("amount must be a positive number of cents")
var ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
var ErrInvalidCategory = errors.New("unknown transaction category")

// State-conflict errors — the entity no longer permits the transition.
// Callers surface these for a re-fetch-and-retry; they are never retried here.
var ErrChallengeNotPending = errors.New("challenge is no longer pending")
var ErrMatchClosed = errors.New("match is already completed or cancelled")
var ErrMatchDisputed = errors.New("match is disputed and frozen until admin resolution")
var ErrMatchNotInProgress = errors.New("match has no score awaiting confirmation")

var validationErrs = []error{
	ErrSelfChallenge, ErrInvalidResponse, ErrNotParticipant, ErrNegativeScore,
	ErrTiedScore, ErrWinnerMismatch, ErrOwnSubmission, ErrInvalidAmount,
	ErrInvalidTransactionType, ErrInvalidCategory,
}

var conflictErrs = []error{
	ErrChallengeNotPending, ErrMatchClosed, ErrMatchDisputed,
	ErrMatchNotInProgress,
}

// IsValidation reports whether err is a bad-input rejection (HTTP 400).
func IsValidation(err error) bool {
	for _, e := range validationErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err is a state-transition conflict (HTTP 409).
func IsConflict(err error) bool {
	for _, e := range conflictErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
