package engine

import (
	"sort"

	"pool-league-system/models"
)

// WinStreak is a player's run of consecutive wins counted back from their
// most recent completed match.
type WinStreak struct {
	PlayerID string `json:"player_id"`
	Streak   int    `json:"streak"`
}

// WinnerCount is a player's completed-match win total.
type WinnerCount struct {
	PlayerID string `json:"player_id"`
	Wins     int    `json:"wins"`
}

// SeasonStats is the engagement reduce over the full season: completed-match
// and challenge totals, the most-challenged player, the longest current win
// streak and the top winners. Player names are resolved by the caller.
type SeasonStats struct {
	TotalMatches         int           `json:"total_matches"`
	TotalChallenges      int           `json:"total_challenges"`
	ActiveChallenges     int           `json:"active_challenges"`
	MostWantedID         *string       `json:"most_wanted_id"`
	MostWantedChallenges int           `json:"most_wanted_challenges"`
	TopWinStreak         *WinStreak    `json:"top_win_streak"`
	RecentWinners        []WinnerCount `json:"recent_winners"`
}

const recentWinnersLimit = 5

// CurrentWinStreak counts playerID's consecutive wins starting from their
// most recent completed match. Any loss, including matches the player did
// not take part in being skipped, ends the run. Input order does not matter.
func CurrentWinStreak(matches []models.Match, playerID string) int {
	streak := 0
	for _, m := range completedNewestFirst(matches) {
		if !m.HasPlayer(playerID) {
			continue
		}
		if m.WinnerID != nil && *m.WinnerID == playerID {
			streak++
			continue
		}
		break
	}
	return streak
}

// SeasonSummary reduces the full match and challenge history to the season
// engagement stats. Deterministic: ties on counts break toward the lower
// player id.
func SeasonSummary(matches []models.Match, challenges []models.Challenge) SeasonStats {
	stats := SeasonStats{RecentWinners: []WinnerCount{}}

	stats.TotalChallenges = len(challenges)
	challengedCount := make(map[string]int)
	for _, ch := range challenges {
		if ch.Status == models.ChallengePending || ch.Status == models.ChallengeAccepted {
			stats.ActiveChallenges++
		}
		challengedCount[ch.ChallengedID]++
	}
	for _, id := range sortedKeys(challengedCount) {
		if challengedCount[id] > stats.MostWantedChallenges {
			wanted := id
			stats.MostWantedID = &wanted
			stats.MostWantedChallenges = challengedCount[id]
		}
	}

	completed := completedNewestFirst(matches)
	stats.TotalMatches = len(completed)

	winCounts := make(map[string]int)
	seen := make(map[string]bool)
	for _, m := range completed {
		if m.WinnerID != nil {
			winCounts[*m.WinnerID]++
		}
		for _, id := range []string{m.Player1ID, m.Player2ID} {
			if seen[id] {
				continue
			}
			seen[id] = true
			if streak := CurrentWinStreak(completed, id); streak > 0 {
				if stats.TopWinStreak == nil || streak > stats.TopWinStreak.Streak {
					stats.TopWinStreak = &WinStreak{PlayerID: id, Streak: streak}
				}
			}
		}
	}

	for _, id := range sortedKeys(winCounts) {
		stats.RecentWinners = append(stats.RecentWinners, WinnerCount{PlayerID: id, Wins: winCounts[id]})
	}
	sort.SliceStable(stats.RecentWinners, func(i, j int) bool {
		return stats.RecentWinners[i].Wins > stats.RecentWinners[j].Wins
	})
	if len(stats.RecentWinners) > recentWinnersLimit {
		stats.RecentWinners = stats.RecentWinners[:recentWinnersLimit]
	}
	return stats
}

// completedNewestFirst filters to completed matches and orders them by
// completion time, newest first. Matches missing a completion time sort last.
func completedNewestFirst(matches []models.Match) []models.Match {
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == models.MatchCompleted {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CompletedAt, out[j].CompletedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
