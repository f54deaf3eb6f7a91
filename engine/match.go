package engine

import (
	"time"

	"pool-league-system/models"
)

// SubmitScore records a score entry by one of the two participants. The
// submitter's own confirmation flag is set; the opponent's flag is reset,
// because whatever they may have confirmed before is not this score.
func SubmitScore(m models.Match, p1Score, p2Score int, winnerID, submittedBy string, now time.Time) (models.Match, error) {
	if !m.HasPlayer(submittedBy) {
		return m, ErrNotParticipant
	}
	if m.Status == models.MatchDisputed {
		return m, ErrMatchDisputed
	}
	if m.Status == models.MatchCompleted || m.Status == models.MatchCancelled {
		return m, ErrMatchClosed
	}
	if p1Score < 0 || p2Score < 0 {
		return m, ErrNegativeScore
	}
	if p1Score == p2Score {
		return m, ErrTiedScore
	}
	if winnerID != scoreWinner(m, p1Score, p2Score) {
		return m, ErrWinnerMismatch
	}

	m.Player1Score = p1Score
	m.Player2Score = p2Score
	m.WinnerID = &winnerID
	sb := submittedBy
	m.SubmittedBy = &sb
	m.Status = models.MatchInProgress
	if m.StartedAt == nil {
		t := now
		m.StartedAt = &t
	}
	if submittedBy == m.Player1ID {
		m.Player1Confirmed = true
		m.Player2Confirmed = false
	} else {
		m.Player2Confirmed = true
		m.Player1Confirmed = false
	}
	return m, nil
}

// ConfirmMatch sets the caller's confirmation flag. Once both flags are true
// the match auto-completes; the caller must persist status and flags in one
// conditional write so the transition cannot lag behind the second flag.
func ConfirmMatch(m models.Match, playerID string, now time.Time) (models.Match, error) {
	if !m.HasPlayer(playerID) {
		return m, ErrNotParticipant
	}
	if m.Status == models.MatchDisputed {
		return m, ErrMatchDisputed
	}
	if m.Status != models.MatchInProgress || m.SubmittedBy == nil {
		return m, ErrMatchNotInProgress
	}
	if *m.SubmittedBy == playerID {
		return m, ErrOwnSubmission
	}

	// The caller's flag is always false here: submission resets the
	// opponent's flag, and a second confirmation never sees in_progress
	// because the first one completes the match.
	if playerID == m.Player1ID {
		m.Player1Confirmed = true
	} else {
		m.Player2Confirmed = true
	}

	if m.Player1Confirmed && m.Player2Confirmed {
		m.Status = models.MatchCompleted
		t := now
		m.CompletedAt = &t
	}
	return m, nil
}

// DisputeMatch freezes an in-progress match for admin resolution.
func DisputeMatch(m models.Match) (models.Match, error) {
	if m.Status == models.MatchDisputed {
		return m, ErrMatchDisputed
	}
	if m.Status != models.MatchInProgress {
		return m, ErrMatchNotInProgress
	}
	m.Status = models.MatchDisputed
	return m, nil
}

// ResetMatch clears all score state and returns the match to scheduled.
// Admin-only; authorization is enforced by the caller.
func ResetMatch(m models.Match) (models.Match, error) {
	if m.Status == models.MatchCompleted || m.Status == models.MatchCancelled {
		return m, ErrMatchClosed
	}
	m.Status = models.MatchScheduled
	m.Player1Score = 0
	m.Player2Score = 0
	m.WinnerID = nil
	m.SubmittedBy = nil
	m.Player1Confirmed = false
	m.Player2Confirmed = false
	m.CompletedAt = nil
	return m, nil
}

// ForceCancelMatch cancels a match regardless of confirmation state. Terminal.
func ForceCancelMatch(m models.Match) (models.Match, error) {
	if m.Status == models.MatchCompleted || m.Status == models.MatchCancelled {
		return m, ErrMatchClosed
	}
	m.Status = models.MatchCancelled
	return m, nil
}

// ForceCompleteMatch completes a match with its current scores, deriving the
// winner and forcing both confirmation flags. Requires unequal scores.
func ForceCompleteMatch(m models.Match, now time.Time) (models.Match, error) {
	if m.Status == models.MatchCompleted || m.Status == models.MatchCancelled {
		return m, ErrMatchClosed
	}
	if m.Player1Score == m.Player2Score {
		return m, ErrTiedScore
	}
	w := scoreWinner(m, m.Player1Score, m.Player2Score)
	m.WinnerID = &w
	m.Player1Confirmed = true
	m.Player2Confirmed = true
	m.Status = models.MatchCompleted
	t := now
	m.CompletedAt = &t
	return m, nil
}

// NeedsConfirmation reports whether the viewer still has to confirm a score
// submitted on this match.
func NeedsConfirmation(m models.Match, viewerID string) bool {
	if m.Status != models.MatchInProgress || m.SubmittedBy == nil || !m.HasPlayer(viewerID) {
		return false
	}
	if viewerID == m.Player1ID {
		return !m.Player1Confirmed
	}
	return !m.Player2Confirmed
}

// WaitingOnOpponent reports whether the viewer has confirmed and the other
// participant has not.
func WaitingOnOpponent(m models.Match, viewerID string) bool {
	if m.Status != models.MatchInProgress || !m.HasPlayer(viewerID) {
		return false
	}
	if viewerID == m.Player1ID {
		return m.Player1Confirmed && !m.Player2Confirmed
	}
	return m.Player2Confirmed && !m.Player1Confirmed
}

func scoreWinner(m models.Match, p1Score, p2Score int) string {
	if p1Score > p2Score {
		return m.Player1ID
	}
	return m.Player2ID
}
