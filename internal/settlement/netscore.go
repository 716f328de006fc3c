package settlement

import "math"

// netscore.go — per-player gross and net segment totals.
//
// A nine only counts once every one of its holes has a recorded score; until
// then its gross stays 0, which downstream code reads as "incomplete" and
// excludes from winner determination. A real gross of 0 cannot occur on a
// course, so the sentinel is unambiguous.

// segmentGross sums a player's gross strokes over holes [first, last].
// Returns 0 unless every hole in the range has a score greater than zero.
func segmentGross(scores map[int]int, first, last int) int {
	total := 0
	for hole := first; hole <= last; hole++ {
		s, ok := scores[hole]
		if !ok || s <= 0 {
			return 0
		}
		total += s
	}
	return total
}

// manualStrokes counts the holes in [first, last] where the stroke policy
// grants the player a stroke. Used when the game assigns strokes per hole
// from the course's stroke-index table instead of splitting the handicap.
func manualStrokes(g Game, playerIdx, first, last int, strokeFn StrokeFunc) int {
	if strokeFn == nil {
		return 0
	}
	p := g.Players[playerIdx]
	n := 0
	for hole := first; hole <= last; hole++ {
		if strokeFn(p, playerIdx, hole) {
			n++
		}
	}
	return n
}

// PlayerScores computes one player's gross and net totals for the front nine,
// back nine, and overall.
//
// In automatic handicap mode the player's strokes are split across the halves
// as floor(handicap/2) on the front and ceil(handicap/2) on the back, with the
// full handicap applied overall. In manual mode the net is gross minus the
// number of holes in the segment where the stroke policy marks a stroke.
//
// An incomplete half keeps gross and net at 0. OverallGross is the sum of the
// two half grosses, so an 18-hole total only exists once both halves are in.
func PlayerScores(g Game, playerIdx int, scores HoleScores, strokeFn StrokeFunc) SegmentScores {
	var out SegmentScores
	if playerIdx < 0 || playerIdx >= len(g.Players) {
		return out
	}
	holes := scores[playerIdx]

	out.Front9Gross = segmentGross(holes, 1, 9)
	out.Back9Gross = segmentGross(holes, 10, 18)
	out.OverallGross = out.Front9Gross + out.Back9Gross

	h := g.Players[playerIdx].Handicap
	var frontStrokes, backStrokes, overallStrokes float64
	if g.AutoHandicap {
		frontStrokes = math.Floor(h / 2)
		backStrokes = math.Ceil(h / 2)
		overallStrokes = h
	} else {
		frontStrokes = float64(manualStrokes(g, playerIdx, 1, 9, strokeFn))
		backStrokes = float64(manualStrokes(g, playerIdx, 10, 18, strokeFn))
		overallStrokes = frontStrokes + backStrokes
	}

	if out.Front9Gross > 0 {
		out.Front9Net = float64(out.Front9Gross) - frontStrokes
	}
	if out.Back9Gross > 0 {
		out.Back9Net = float64(out.Back9Gross) - backStrokes
	}
	if out.Front9Gross > 0 && out.Back9Gross > 0 {
		out.OverallNet = float64(out.OverallGross) - overallStrokes
	}
	return out
}

// AllPlayerScores computes SegmentScores for every main player in order.
func AllPlayerScores(g Game, scores HoleScores, strokeFn StrokeFunc) []SegmentScores {
	out := make([]SegmentScores, len(g.Players))
	for i := range g.Players {
		out[i] = PlayerScores(g, i, scores, strokeFn)
	}
	return out
}
