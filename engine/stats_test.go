package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-league-system/models"
)

func completedMatch(id, p1, p2, winner string, at time.Time) models.Match {
	return models.Match{
		ID:          id,
		Player1ID:   p1,
		Player2ID:   p2,
		Status:      models.MatchCompleted,
		WinnerID:    &winner,
		CompletedAt: &at,
	}
}

func TestCurrentWinStreak(t *testing.T) {
	base := time.Now()
	at := func(i int) time.Time { return base.Add(time.Duration(i) * time.Hour) }

	matches := []models.Match{
		completedMatch("m1", "a", "b", "b", at(1)), // a's oldest loss
		completedMatch("m2", "a", "c", "a", at(2)),
		completedMatch("m3", "a", "b", "a", at(3)),
		completedMatch("m4", "c", "b", "b", at(4)), // not a's match
		{ID: "m5", Player1ID: "a", Player2ID: "c", Status: models.MatchInProgress},
	}

	assert.Equal(t, 2, CurrentWinStreak(matches, "a"), "streak runs through matches of others and stops at the loss")
	assert.Equal(t, 1, CurrentWinStreak(matches, "b"), "most recent win, then a loss before it")
	assert.Equal(t, 0, CurrentWinStreak(matches, "c"))
	assert.Equal(t, 0, CurrentWinStreak(matches, "nobody"))
	assert.Equal(t, 0, CurrentWinStreak(nil, "a"))
}

func TestCurrentWinStreakIgnoresInputOrder(t *testing.T) {
	base := time.Now()
	newest := completedMatch("m2", "a", "b", "b", base.Add(time.Hour))
	oldest := completedMatch("m1", "a", "b", "a", base)

	// Newest match is a loss for a regardless of slice order.
	assert.Equal(t, 0, CurrentWinStreak([]models.Match{oldest, newest}, "a"))
	assert.Equal(t, 0, CurrentWinStreak([]models.Match{newest, oldest}, "a"))
	assert.Equal(t, 1, CurrentWinStreak([]models.Match{oldest, newest}, "b"))
}

func TestSeasonSummary(t *testing.T) {
	base := time.Now()
	at := func(i int) time.Time { return base.Add(time.Duration(i) * time.Hour) }

	matches := []models.Match{
		completedMatch("m1", "a", "b", "a", at(1)),
		completedMatch("m2", "a", "c", "a", at(2)),
		completedMatch("m3", "b", "c", "b", at(3)),
		{ID: "m4", Player1ID: "a", Player2ID: "b", Status: models.MatchScheduled},
	}
	challenges := []models.Challenge{
		{ID: "c1", ChallengerID: "a", ChallengedID: "b", Status: models.ChallengePending},
		{ID: "c2", ChallengerID: "c", ChallengedID: "b", Status: models.ChallengeAccepted},
		{ID: "c3", ChallengerID: "b", ChallengedID: "a", Status: models.ChallengeDeclined},
	}

	stats := SeasonSummary(matches, challenges)

	assert.Equal(t, 3, stats.TotalMatches, "scheduled matches do not count")
	assert.Equal(t, 3, stats.TotalChallenges)
	assert.Equal(t, 2, stats.ActiveChallenges, "pending and accepted only")

	require.NotNil(t, stats.MostWantedID)
	assert.Equal(t, "b", *stats.MostWantedID)
	assert.Equal(t, 2, stats.MostWantedChallenges)

	require.NotNil(t, stats.TopWinStreak)
	assert.Equal(t, "a", stats.TopWinStreak.PlayerID, "a won twice in a row; b's single win is shorter")
	assert.Equal(t, 2, stats.TopWinStreak.Streak)

	require.Len(t, stats.RecentWinners, 2)
	assert.Equal(t, WinnerCount{PlayerID: "a", Wins: 2}, stats.RecentWinners[0])
	assert.Equal(t, WinnerCount{PlayerID: "b", Wins: 1}, stats.RecentWinners[1])
}

func TestSeasonSummaryEmpty(t *testing.T) {
	stats := SeasonSummary(nil, nil)

	assert.Zero(t, stats.TotalMatches)
	assert.Zero(t, stats.TotalChallenges)
	assert.Zero(t, stats.ActiveChallenges)
	assert.Nil(t, stats.MostWantedID)
	assert.Nil(t, stats.TopWinStreak)
	assert.Empty(t, stats.RecentWinners)
}

func TestSeasonSummaryCapsRecentWinners(t *testing.T) {
	base := time.Now()
	var matches []models.Match
	winners := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p6"}
	for i, w := range winners {
		matches = append(matches, completedMatch(
			string(rune('a'+i)), w, "z", w, base.Add(time.Duration(i)*time.Hour)))
	}

	stats := SeasonSummary(matches, nil)

	require.Len(t, stats.RecentWinners, 5)
	assert.Equal(t, WinnerCount{PlayerID: "p6", Wins: 2}, stats.RecentWinners[0], "sorted by wins first")
}
