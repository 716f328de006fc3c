package settlement

// niners.go — the 3-player "niners" points game.
//
// Every hole is worth exactly 9 points, split across the trio by net-score
// rank. A hole only pays out once all three players have a score on it; until
// then it contributes nothing to anyone.

// ninersPlayerCount is fixed: the 9-point split is only defined for a trio.
const ninersPlayerCount = 3

// holeNet is one player's net score on a single hole: gross minus one if the
// stroke policy grants them a stroke there.
func holeNet(g Game, playerIdx, hole, gross int, strokeFn StrokeFunc) int {
	if strokeFn != nil && strokeFn(g.Players[playerIdx], playerIdx, hole) {
		return gross - 1
	}
	return gross
}

// splitNine awards a hole's 9 points across three net scores.
// The tie patterns, with lower net being better:
//
//	all three tied            -> 3/3/3
//	best two tied, one worse  -> 4/4/1
//	worst two tied, one better-> 5/2/2
//	no ties                   -> 5/3/1
func splitNine(nets [3]int) [3]int {
	// Rank positions by net ascending; ties keep player order, which doesn't
	// matter because tied players always receive equal points.
	order := [3]int{0, 1, 2}
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if nets[order[j]] < nets[order[i]] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	best, mid, worst := order[0], order[1], order[2]

	var pts [3]int
	switch {
	case nets[best] == nets[mid] && nets[mid] == nets[worst]:
		pts[best], pts[mid], pts[worst] = 3, 3, 3
	case nets[best] == nets[mid]:
		pts[best], pts[mid], pts[worst] = 4, 4, 1
	case nets[mid] == nets[worst]:
		pts[best], pts[mid], pts[worst] = 5, 2, 2
	default:
		pts[best], pts[mid], pts[worst] = 5, 3, 1
	}
	return pts
}

// HoleByHolePoints returns the per-hole niners points breakdown for a 3-player
// game. Holes missing a score from any player are skipped. Returns nil unless
// the game is a niners game with exactly three players.
func HoleByHolePoints(g Game, scores HoleScores, strokeFn StrokeFunc) []HolePoints {
	if g.Type != GameTypeNiners || len(g.Players) != ninersPlayerCount {
		return nil
	}

	var out []HolePoints
	for hole := 1; hole <= 18; hole++ {
		var nets [3]int
		complete := true
		for i := 0; i < ninersPlayerCount; i++ {
			gross, ok := scores[i][hole]
			if !ok || gross <= 0 {
				complete = false
				break
			}
			nets[i] = holeNet(g, i, hole, gross, strokeFn)
		}
		if !complete {
			continue
		}
		out = append(out, HolePoints{Hole: hole, Points: splitNine(nets)})
	}
	return out
}

// TotalNinersPoints sums the per-hole points into each player's running total.
// Returns nil under the same conditions as HoleByHolePoints.
func TotalNinersPoints(g Game, scores HoleScores, strokeFn StrokeFunc) *[3]int {
	holes := HoleByHolePoints(g, scores, strokeFn)
	if g.Type != GameTypeNiners || len(g.Players) != ninersPlayerCount {
		return nil
	}
	var totals [3]int
	for _, hp := range holes {
		for i, p := range hp.Points {
			totals[i] += p
		}
	}
	return &totals
}
