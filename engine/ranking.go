package engine

// RankDelta is previous position minus current; positive means the player
// moved up the ladder. Nil previous (new entrant) is a zero delta.
func RankDelta(previousPosition *int, position int) int {
	if previousPosition == nil {
		return 0
	}
	return *previousPosition - position
}
