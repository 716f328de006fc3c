package settlement

// winners.go — per-segment winner determination.
//
// A segment winner is the player with the strictly lowest valid net score.
// Players whose segment is incomplete (net 0) are filtered out first. When the
// minimum is shared, the segment has no winner at all: the tie is a fairness
// rule, never broken by handicap, name, or any other secondary key.

// segmentWinner returns the index of the single player with the lowest
// positive net score, or nil when no player qualifies or the lead is tied.
func segmentWinner(nets []float64) *int {
	best := -1
	tied := false
	for i, n := range nets {
		if n <= 0 {
			continue // incomplete segment, not counted
		}
		switch {
		case best == -1 || n < nets[best]:
			best = i
			tied = false
		case n == nets[best]:
			tied = true
		}
	}
	if best == -1 || tied {
		return nil
	}
	return &best
}

// DetermineWinners finds the front-nine, back-nine, and overall winners from
// the players' segment scores. The pot winner is the overall winner restricted
// to players with a complete round; since a positive overall net already
// requires both halves, the two coincide whenever an overall winner exists.
func DetermineWinners(results []SegmentScores) Winners {
	front := make([]float64, len(results))
	back := make([]float64, len(results))
	overall := make([]float64, len(results))
	for i, r := range results {
		front[i] = r.Front9Net
		back[i] = r.Back9Net
		overall[i] = r.OverallNet
	}

	w := Winners{
		Front9:  segmentWinner(front),
		Back9:   segmentWinner(back),
		Overall: segmentWinner(overall),
	}
	w.Pot = w.Overall
	return w
}
