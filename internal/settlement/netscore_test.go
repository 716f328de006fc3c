package settlement

import "testing"

// fullRound fills holes 1-18 with the same gross score.
func fullRound(gross int) map[int]int {
	m := make(map[int]int, 18)
	for h := 1; h <= 18; h++ {
		m[h] = gross
	}
	return m
}

// frontOnly fills holes 1-9 with the same gross score.
func frontOnly(gross int) map[int]int {
	m := make(map[int]int, 9)
	for h := 1; h <= 9; h++ {
		m[h] = gross
	}
	return m
}

func TestPlayerScoresAutoHandicap(t *testing.T) {
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players: []Player{
			{Name: "P1", Handicap: 10},
			{Name: "P2", Handicap: 15},
		},
	}
	scores := HoleScores{
		0: fullRound(5), // 45 + 45
		1: fullRound(6), // 54 + 54
	}

	tests := []struct {
		name   string
		player int
		want   SegmentScores
	}{
		{
			name:   "even handicap splits evenly",
			player: 0,
			want: SegmentScores{
				Front9Gross: 45, Back9Gross: 45, OverallGross: 90,
				Front9Net: 40, Back9Net: 40, OverallNet: 80,
			},
		},
		{
			name:   "odd handicap gives the extra stroke to the back nine",
			player: 1,
			want: SegmentScores{
				Front9Gross: 54, Back9Gross: 54, OverallGross: 108,
				Front9Net: 47, Back9Net: 46, OverallNet: 93,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlayerScores(g, tt.player, scores, nil)
			if got != tt.want {
				t.Fatalf("PlayerScores() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlayerScoresIncompleteSegments(t *testing.T) {
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players:      []Player{{Name: "P1", Handicap: 10}},
	}

	t.Run("front nine only", func(t *testing.T) {
		got := PlayerScores(g, 0, HoleScores{0: frontOnly(5)}, nil)
		if got.Front9Gross != 45 || got.Front9Net != 40 {
			t.Fatalf("front nine = %d/%v, want 45/40", got.Front9Gross, got.Front9Net)
		}
		// The back is untouched, so back and overall stay at the incomplete sentinel.
		if got.Back9Gross != 0 || got.Back9Net != 0 {
			t.Fatalf("incomplete back nine should be 0, got %d/%v", got.Back9Gross, got.Back9Net)
		}
		if got.OverallNet != 0 {
			t.Fatalf("overall net should be 0 without both halves, got %v", got.OverallNet)
		}
	})

	t.Run("one missing hole zeroes the half", func(t *testing.T) {
		holes := fullRound(5)
		delete(holes, 7)
		got := PlayerScores(g, 0, HoleScores{0: holes}, nil)
		if got.Front9Gross != 0 || got.Front9Net != 0 {
			t.Fatalf("half with a missing hole should be 0, got %d/%v", got.Front9Gross, got.Front9Net)
		}
		if got.Back9Gross != 45 {
			t.Fatalf("back nine = %d, want 45", got.Back9Gross)
		}
	})

	t.Run("zero score counts as unscored", func(t *testing.T) {
		holes := fullRound(5)
		holes[3] = 0
		got := PlayerScores(g, 0, HoleScores{0: holes}, nil)
		if got.Front9Gross != 0 {
			t.Fatalf("half with a zero score should be 0, got %d", got.Front9Gross)
		}
	})

	t.Run("no scores at all", func(t *testing.T) {
		got := PlayerScores(g, 0, HoleScores{}, nil)
		if got != (SegmentScores{}) {
			t.Fatalf("empty scorecard should be all zero, got %+v", got)
		}
	})
}

func TestPlayerScoresManualStrokes(t *testing.T) {
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: false,
		Players:      []Player{{Name: "P1", Handicap: 12}},
	}
	scores := HoleScores{0: fullRound(5)}

	// Strokes on the three hardest holes of each nine.
	strokeHoles := map[int]bool{1: true, 4: true, 8: true, 11: true, 13: true, 17: true}
	strokeFn := func(p Player, playerIdx, hole int) bool {
		return strokeHoles[hole]
	}

	got := PlayerScores(g, 0, scores, strokeFn)
	if got.Front9Net != 42 || got.Back9Net != 42 || got.OverallNet != 84 {
		t.Fatalf("manual nets = %v/%v/%v, want 42/42/84", got.Front9Net, got.Back9Net, got.OverallNet)
	}

	// A nil policy in manual mode allocates nothing: net equals gross.
	got = PlayerScores(g, 0, scores, nil)
	if got.Front9Net != 45 || got.OverallNet != 90 {
		t.Fatalf("nil policy nets = %v/%v, want 45/90", got.Front9Net, got.OverallNet)
	}
}

func TestPlayerScoresFractionalHandicap(t *testing.T) {
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players:      []Player{{Name: "P1", Handicap: 14.2}},
	}
	got := PlayerScores(g, 0, HoleScores{0: fullRound(5)}, nil)

	// floor(14.2/2)=7 front, ceil(14.2/2)=8 back, full 14.2 overall.
	if got.Front9Net != 38 || got.Back9Net != 37 {
		t.Fatalf("fractional handicap halves = %v/%v, want 38/37", got.Front9Net, got.Back9Net)
	}
	if got.OverallNet != 90-14.2 {
		t.Fatalf("fractional handicap overall = %v, want %v", got.OverallNet, 90-14.2)
	}
}
