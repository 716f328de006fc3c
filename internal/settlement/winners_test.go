package settlement

import "testing"

func TestSegmentWinner(t *testing.T) {
	tests := []struct {
		name string
		nets []float64
		want *int // nil = no winner
	}{
		{name: "single lowest wins", nets: []float64{40, 42, 45}, want: intPtr(0)},
		{name: "winner in the middle", nets: []float64{44, 41, 45}, want: intPtr(1)},
		{name: "tied minimum suppresses winner", nets: []float64{40, 40, 45}, want: nil},
		{name: "all tied", nets: []float64{40, 40, 40}, want: nil},
		{name: "incomplete players filtered out", nets: []float64{0, 42, 0}, want: intPtr(1)},
		{name: "nobody complete", nets: []float64{0, 0}, want: nil},
		{name: "tie among complete players only", nets: []float64{0, 42, 42}, want: nil},
		{name: "fractional nets compare exactly", nets: []float64{39.8, 40}, want: intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segmentWinner(tt.nets)
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("segmentWinner() = %d, want no winner", *got)
			case tt.want != nil && got == nil:
				t.Fatalf("segmentWinner() = nil, want %d", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Fatalf("segmentWinner() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestDetermineWinners(t *testing.T) {
	results := []SegmentScores{
		{Front9Net: 40, Back9Net: 41, OverallNet: 81},
		{Front9Net: 42, Back9Net: 39, OverallNet: 81},
		{Front9Net: 43, Back9Net: 0, OverallNet: 0}, // back nine not finished
	}

	w := DetermineWinners(results)
	if w.Front9 == nil || *w.Front9 != 0 {
		t.Fatalf("front9 winner = %v, want 0", w.Front9)
	}
	if w.Back9 == nil || *w.Back9 != 1 {
		t.Fatalf("back9 winner = %v, want 1", w.Back9)
	}
	// Overall is tied between the two complete rounds.
	if w.Overall != nil {
		t.Fatalf("overall winner = %d, want none on a tie", *w.Overall)
	}
	// The pot follows the overall winner.
	if w.Pot != nil {
		t.Fatalf("pot winner = %d, want none", *w.Pot)
	}
}

func intPtr(i int) *int { return &i }
