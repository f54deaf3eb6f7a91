package engine

import (
	"time"

	"pool-league-system/models"
)

// ChallengeTTL is the fixed acceptance window for a new challenge.
const ChallengeTTL = 7 * 24 * time.Hour

// NewChallenge builds a pending challenge record. The expiry is a fixed
// policy, not a caller choice.
func NewChallenge(challengerID, challengedID string, now time.Time) (models.Challenge, error) {
	if challengerID == challengedID {
		return models.Challenge{}, ErrSelfChallenge
	}
	return models.Challenge{
		ChallengerID: challengerID,
		ChallengedID: challengedID,
		Status:       models.ChallengePending,
		ExpiresAt:    now.Add(ChallengeTTL),
	}, nil
}

// ValidResponse reports whether s is a legal respond-to-challenge outcome.
func ValidResponse(s string) bool {
	return s == models.ChallengeAccepted || s == models.ChallengeDeclined || s == models.ChallengeCancelled
}

// RespondToChallenge transitions a pending challenge to the given response.
// All response states are terminal for the challenge: an accepted challenge
// moves forward only through match creation, which is a separate entity.
func RespondToChallenge(c models.Challenge, response string) (models.Challenge, error) {
	if !ValidResponse(response) {
		return c, ErrInvalidResponse
	}
	if c.Status != models.ChallengePending {
		return c, ErrChallengeNotPending
	}
	c.Status = response
	return c, nil
}

// ChallengeExpired reports whether c is a pending challenge past its window.
// The sweep applies exactly this condition, so running it twice is a no-op.
func ChallengeExpired(c models.Challenge, now time.Time) bool {
	return c.Status == models.ChallengePending && !c.ExpiresAt.After(now)
}
