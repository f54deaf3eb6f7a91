package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-league-system/models"
)

func scheduledMatch() models.Match {
	return models.Match{
		ID:        "m1",
		Player1ID: "p1",
		Player2ID: "p2",
		Status:    models.MatchScheduled,
	}
}

func TestSubmitScoreHappyPath(t *testing.T) {
	now := time.Now()

	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)

	assert.Equal(t, models.MatchInProgress, m.Status)
	assert.Equal(t, 5, m.Player1Score)
	assert.Equal(t, 3, m.Player2Score)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, "p1", *m.WinnerID)
	require.NotNil(t, m.SubmittedBy)
	assert.Equal(t, "p1", *m.SubmittedBy)
	assert.True(t, m.Player1Confirmed, "submitter confirms their own entry")
	assert.False(t, m.Player2Confirmed, "opponent still has to confirm")
	require.NotNil(t, m.StartedAt)
}

func TestSubmitScoreValidation(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name    string
		p1, p2  int
		winner  string
		by      string
		wantErr error
	}{
		{name: "tie rejected", p1: 5, p2: 5, winner: "p1", by: "p1", wantErr: ErrTiedScore},
		{name: "negative score", p1: -1, p2: 3, winner: "p2", by: "p1", wantErr: ErrNegativeScore},
		{name: "winner with lower score", p1: 5, p2: 3, winner: "p2", by: "p1", wantErr: ErrWinnerMismatch},
		{name: "outsider submitting", p1: 5, p2: 3, winner: "p1", by: "p9", wantErr: ErrNotParticipant},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SubmitScore(scheduledMatch(), tc.p1, tc.p2, tc.winner, tc.by, now)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestSubmitScoreStateConflicts(t *testing.T) {
	now := time.Now()

	for _, status := range []string{models.MatchCompleted, models.MatchCancelled} {
		m := scheduledMatch()
		m.Status = status
		_, err := SubmitScore(m, 5, 3, "p1", "p1", now)
		assert.ErrorIs(t, err, ErrMatchClosed, status)
	}

	m := scheduledMatch()
	m.Status = models.MatchDisputed
	_, err := SubmitScore(m, 5, 3, "p1", "p1", now)
	assert.ErrorIs(t, err, ErrMatchDisputed)
	assert.True(t, IsConflict(err))
}

func TestDualConfirmationCompletes(t *testing.T) {
	now := time.Now()
	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)

	// One flag set: stays in_progress indefinitely.
	assert.Equal(t, models.MatchInProgress, m.Status)
	assert.Nil(t, m.CompletedAt)

	m, err = ConfirmMatch(m, "p2", now)
	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, m.Status)
	assert.True(t, m.Player1Confirmed)
	assert.True(t, m.Player2Confirmed)
	require.NotNil(t, m.CompletedAt)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, "p1", *m.WinnerID, "winner is the side with the higher score")
}

func TestConfirmRejections(t *testing.T) {
	now := time.Now()
	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)

	_, err = ConfirmMatch(m, "p1", now)
	assert.ErrorIs(t, err, ErrOwnSubmission, "submitter cannot supply the opposing confirmation")

	_, err = ConfirmMatch(m, "p9", now)
	assert.ErrorIs(t, err, ErrNotParticipant)

	fresh := scheduledMatch()
	_, err = ConfirmMatch(fresh, "p2", now)
	assert.ErrorIs(t, err, ErrMatchNotInProgress, "nothing submitted yet")
}

func TestRepeatConfirmationHitsClosedMatch(t *testing.T) {
	now := time.Now()
	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)

	// While in_progress only the submitter's flag can be set, and that path
	// is cut off as an own-submission. The opponent's first confirmation
	// completes the match, so a repeat finds nothing awaiting confirmation.
	m, err = ConfirmMatch(m, "p2", now)
	require.NoError(t, err)
	require.Equal(t, models.MatchCompleted, m.Status)

	_, err = ConfirmMatch(m, "p2", now)
	assert.ErrorIs(t, err, ErrMatchNotInProgress)
}

func TestResubmitResetsOpponentConfirmation(t *testing.T) {
	now := time.Now()
	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)

	// p2 disagrees and submits different scores: p1's earlier confirmation
	// applied to the old score and must reset.
	m, err = SubmitScore(m, 4, 7, "p2", "p2", now)
	require.NoError(t, err)

	assert.Equal(t, models.MatchInProgress, m.Status)
	assert.False(t, m.Player1Confirmed)
	assert.True(t, m.Player2Confirmed)
	require.NotNil(t, m.SubmittedBy)
	assert.Equal(t, "p2", *m.SubmittedBy)
	assert.Equal(t, "p2", *m.WinnerID)
}

func TestDisputeFreezesMatch(t *testing.T) {
	now := time.Now()
	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)

	m, err = DisputeMatch(m)
	require.NoError(t, err)
	assert.Equal(t, models.MatchDisputed, m.Status)

	_, err = SubmitScore(m, 6, 3, "p1", "p1", now)
	assert.ErrorIs(t, err, ErrMatchDisputed)
	_, err = ConfirmMatch(m, "p2", now)
	assert.ErrorIs(t, err, ErrMatchDisputed)
	_, err = DisputeMatch(m)
	assert.ErrorIs(t, err, ErrMatchDisputed)
}

func TestDisputeRequiresSubmittedScore(t *testing.T) {
	_, err := DisputeMatch(scheduledMatch())
	assert.ErrorIs(t, err, ErrMatchNotInProgress)
}

func TestResetMatchClearsEverything(t *testing.T) {
	now := time.Now()
	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)
	m, err = DisputeMatch(m)
	require.NoError(t, err)

	m, err = ResetMatch(m)
	require.NoError(t, err)
	assert.Equal(t, models.MatchScheduled, m.Status)
	assert.Zero(t, m.Player1Score)
	assert.Zero(t, m.Player2Score)
	assert.Nil(t, m.WinnerID)
	assert.Nil(t, m.SubmittedBy)
	assert.False(t, m.Player1Confirmed)
	assert.False(t, m.Player2Confirmed)
	assert.Nil(t, m.CompletedAt)

	// Back in play: a fresh submission works again.
	_, err = SubmitScore(m, 2, 9, "p2", "p2", now)
	assert.NoError(t, err)
}

func TestForceCompleteMatch(t *testing.T) {
	now := time.Now()
	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)
	m, err = DisputeMatch(m)
	require.NoError(t, err)

	m, err = ForceCompleteMatch(m, now)
	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, m.Status)
	assert.Equal(t, "p1", *m.WinnerID)
	assert.True(t, m.Player1Confirmed)
	assert.True(t, m.Player2Confirmed)
	require.NotNil(t, m.CompletedAt)
}

func TestForceCompleteRejectsTiedScores(t *testing.T) {
	m := scheduledMatch()
	m.Status = models.MatchDisputed
	m.Player1Score = 4
	m.Player2Score = 4

	_, err := ForceCompleteMatch(m, time.Now())
	assert.ErrorIs(t, err, ErrTiedScore)
}

func TestForceCancelMatch(t *testing.T) {
	m, err := ForceCancelMatch(scheduledMatch())
	require.NoError(t, err)
	assert.Equal(t, models.MatchCancelled, m.Status)

	_, err = ForceCancelMatch(m)
	assert.ErrorIs(t, err, ErrMatchClosed, "cancelled is terminal")
}

func TestConfirmationPredicates(t *testing.T) {
	now := time.Now()
	m, err := SubmitScore(scheduledMatch(), 5, 3, "p1", "p1", now)
	require.NoError(t, err)

	assert.True(t, NeedsConfirmation(m, "p2"))
	assert.False(t, NeedsConfirmation(m, "p1"))
	assert.True(t, WaitingOnOpponent(m, "p1"))
	assert.False(t, WaitingOnOpponent(m, "p2"))
	assert.False(t, NeedsConfirmation(m, "p9"))
	assert.False(t, WaitingOnOpponent(m, "p9"))

	done, err := ConfirmMatch(m, "p2", now)
	require.NoError(t, err)
	assert.False(t, NeedsConfirmation(done, "p2"), "completed match needs nothing")
	assert.False(t, WaitingOnOpponent(done, "p1"))
}
