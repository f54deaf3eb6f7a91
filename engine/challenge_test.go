package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-league-system/models"
)

func TestNewChallenge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c, err := NewChallenge("p1", "p2", now)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengePending, c.Status)
	assert.Equal(t, now.Add(7*24*time.Hour), c.ExpiresAt, "expiry window is a fixed 7 days")
}

func TestNewChallengeRejectsSelfChallenge(t *testing.T) {
	_, err := NewChallenge("p1", "p1", time.Now())
	assert.ErrorIs(t, err, ErrSelfChallenge)
	assert.True(t, IsValidation(err))
}

func TestRespondToChallenge(t *testing.T) {
	cases := []struct {
		name     string
		status   string
		response string
		wantErr  error
	}{
		{name: "accept pending", status: models.ChallengePending, response: models.ChallengeAccepted},
		{name: "decline pending", status: models.ChallengePending, response: models.ChallengeDeclined},
		{name: "cancel pending", status: models.ChallengePending, response: models.ChallengeCancelled},
		{name: "accept already accepted", status: models.ChallengeAccepted, response: models.ChallengeAccepted, wantErr: ErrChallengeNotPending},
		{name: "decline expired", status: models.ChallengeExpired, response: models.ChallengeDeclined, wantErr: ErrChallengeNotPending},
		{name: "bogus response", status: models.ChallengePending, response: "maybe", wantErr: ErrInvalidResponse},
		{name: "pending is not a response", status: models.ChallengePending, response: models.ChallengePending, wantErr: ErrInvalidResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := models.Challenge{ChallengerID: "p1", ChallengedID: "p2", Status: tc.status}
			got, err := RespondToChallenge(c, tc.response)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.status, got.Status, "failed response must not change status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.response, got.Status)
		})
	}
}

func TestChallengeExpired(t *testing.T) {
	now := time.Now()

	pendingPast := models.Challenge{Status: models.ChallengePending, ExpiresAt: now.Add(-time.Second)}
	assert.True(t, ChallengeExpired(pendingPast, now))

	pendingExact := models.Challenge{Status: models.ChallengePending, ExpiresAt: now}
	assert.True(t, ChallengeExpired(pendingExact, now), "expires_at <= now counts as expired")

	pendingFuture := models.Challenge{Status: models.ChallengePending, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, ChallengeExpired(pendingFuture, now))

	acceptedPast := models.Challenge{Status: models.ChallengeAccepted, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, ChallengeExpired(acceptedPast, now), "only pending challenges expire")
}

func TestExpiryThenRespondConflicts(t *testing.T) {
	now := time.Now()
	c := models.Challenge{Status: models.ChallengePending, ExpiresAt: now.Add(-time.Second)}
	require.True(t, ChallengeExpired(c, now))

	c.Status = models.ChallengeExpired
	_, err := RespondToChallenge(c, models.ChallengeAccepted)
	assert.ErrorIs(t, err, ErrChallengeNotPending)
	assert.True(t, IsConflict(err))
}
