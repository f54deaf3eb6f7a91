package engine

// View keys name the client read-views a write can stale. Services publish
// them over the realtime channel after each successful mutation; delivery is
// best-effort, so read paths must also self-heal (sweep-on-read, re-fetch).
const (
	ViewChallenges = "challenges"
	ViewMatches    = "matches"
	ViewRankings   = "rankings"
	ViewTreasury   = "treasury"
	ViewActivity   = "activity"
	ViewPlayers    = "players"
)

// Invalidation sets per operation family. Deterministic so they compose with
// either pull-based or push-based refresh.
var (
	ChallengeInvalidations     = []string{ViewChallenges, ViewActivity}
	MatchInvalidations         = []string{ViewMatches, ViewActivity}
	MatchCompleteInvalidations = []string{ViewMatches, ViewRankings, ViewPlayers, ViewActivity}
	TreasuryInvalidations      = []string{ViewTreasury, ViewActivity}
	RankingInvalidations       = []string{ViewRankings, ViewActivity}
	PlayerInvalidations        = []string{ViewPlayers, ViewRankings}
)
