package handlers

// strokes.go — handicap stroke allocation from a course's stroke-index table.
//
// Every hole on a course carries a stroke index from 1 (hardest) to 18
// (easiest). A player's course handicap says how many strokes they get: one on
// each of the hardest N holes, and for handicaps above 18 the allocation wraps
// around for a second stroke on the hardest holes again.
//
// This is the policy the settlement engine consumes in manual mode; the engine
// itself only sees a predicate.

// strokesOnHole returns how many handicap strokes a player receives on the
// hole with the given stroke index (1-18). Non-positive handicaps get none.
func strokesOnHole(courseHandicap, strokeIndex int) int {
	if courseHandicap <= 0 || strokeIndex < 1 || strokeIndex > 18 {
		return 0
	}
	strokes := courseHandicap / 18
	if strokeIndex <= courseHandicap%18 {
		strokes++
	}
	return strokes
}

// receivesStroke reports whether the player gets at least one stroke on the
// hole. Side-bet games only ever allocate a single stroke per hole, so the
// boolean form is what the settlement engine's stroke policy uses.
func receivesStroke(courseHandicap, strokeIndex int) bool {
	return strokesOnHole(courseHandicap, strokeIndex) >= 1
}
