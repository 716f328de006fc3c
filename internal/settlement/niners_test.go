package settlement

import "testing"

func ninersGame(pointValue float64) Game {
	return Game{
		Type:       GameTypeNiners,
		PointValue: pointValue,
		Players: []Player{
			{Name: "A"},
			{Name: "B"},
			{Name: "C"},
		},
	}
}

// scoresForHole builds a HoleScores map with one scored hole.
func scoresForHole(hole int, gross [3]int) HoleScores {
	s := HoleScores{}
	for i, g := range gross {
		if g > 0 {
			s[i] = map[int]int{hole: g}
		}
	}
	return s
}

func TestHoleByHolePointsTiePatterns(t *testing.T) {
	g := ninersGame(1)

	tests := []struct {
		name  string
		gross [3]int
		want  [3]int
	}{
		{name: "no ties", gross: [3]int{3, 4, 5}, want: [3]int{5, 3, 1}},
		{name: "no ties reversed order", gross: [3]int{5, 4, 3}, want: [3]int{1, 3, 5}},
		{name: "all three tied", gross: [3]int{4, 4, 4}, want: [3]int{3, 3, 3}},
		{name: "best two tied", gross: [3]int{4, 4, 6}, want: [3]int{4, 4, 1}},
		{name: "worst two tied", gross: [3]int{3, 5, 5}, want: [3]int{5, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoleByHolePoints(g, scoresForHole(1, tt.gross), nil)
			if len(got) != 1 {
				t.Fatalf("expected 1 scored hole, got %d", len(got))
			}
			if got[0].Points != tt.want {
				t.Fatalf("points = %v, want %v", got[0].Points, tt.want)
			}

			// Every scored hole is worth exactly 9 points, regardless of ties.
			sum := got[0].Points[0] + got[0].Points[1] + got[0].Points[2]
			if sum != 9 {
				t.Fatalf("hole points sum = %d, want 9", sum)
			}
		})
	}
}

func TestHoleByHolePointsStrokesChangeRanking(t *testing.T) {
	g := ninersGame(1)
	// C gets a stroke on hole 1: gross 5 plays as net 4, tying the best two.
	strokeFn := func(p Player, playerIdx, hole int) bool {
		return playerIdx == 2 && hole == 1
	}
	got := HoleByHolePoints(g, scoresForHole(1, [3]int{4, 6, 5}), strokeFn)
	if len(got) != 1 {
		t.Fatalf("expected 1 scored hole, got %d", len(got))
	}
	if want := [3]int{4, 1, 4}; got[0].Points != want {
		t.Fatalf("points = %v, want %v", got[0].Points, want)
	}
}

func TestHoleByHolePointsSkipsIncompleteHoles(t *testing.T) {
	g := ninersGame(1)

	// Hole 1 fully scored, hole 2 missing C's score, hole 3 has a zero.
	s := HoleScores{
		0: {1: 4, 2: 4, 3: 4},
		1: {1: 5, 2: 5, 3: 5},
		2: {1: 6, 3: 0},
	}
	got := HoleByHolePoints(g, s, nil)
	if len(got) != 1 || got[0].Hole != 1 {
		t.Fatalf("expected only hole 1 to score, got %+v", got)
	}
}

func TestHoleByHolePointsWrongShape(t *testing.T) {
	g := ninersGame(1)
	g.Players = g.Players[:2]
	if got := HoleByHolePoints(g, HoleScores{}, nil); got != nil {
		t.Fatalf("two-player niners should be nil, got %+v", got)
	}

	wrongType := ninersGame(1)
	wrongType.Type = GameTypeIndividualNet
	if got := HoleByHolePoints(wrongType, HoleScores{}, nil); got != nil {
		t.Fatalf("non-niners game should be nil, got %+v", got)
	}
}

func TestTotalNinersPoints(t *testing.T) {
	g := ninersGame(1)

	// A is best on every hole, C worst: 5/3/1 eighteen times.
	s := HoleScores{0: fullRound(3), 1: fullRound(4), 2: fullRound(5)}
	got := TotalNinersPoints(g, s, nil)
	if got == nil {
		t.Fatal("expected totals, got nil")
	}
	if want := [3]int{90, 54, 18}; *got != want {
		t.Fatalf("totals = %v, want %v", *got, want)
	}

	// A full round always distributes 18 holes x 9 points.
	if got[0]+got[1]+got[2] != 162 {
		t.Fatalf("total points = %d, want 162", got[0]+got[1]+got[2])
	}
}
