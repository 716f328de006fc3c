package handlers

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/settlement"
)

func testGame() models.Game {
	return models.Game{
		Kind:         models.GameKindIndividualNet,
		AutoHandicap: true,
		Front9Bet:    decimal.NewFromInt(5),
		Back9Bet:     decimal.NewFromInt(5),
		OverallBet:   decimal.NewFromInt(10),
		PotBet:       decimal.NewFromInt(2),
		Players: []models.GamePlayer{
			{Position: 0, Name: "Alice", Handicap: 10, InPot: true},
			{Position: 1, Name: "Bob", Handicap: 16, InPot: true,
				Scores: []models.GameHoleScore{
					{HoleNumber: 1, GrossScore: 5},
					{HoleNumber: 2, GrossScore: 4},
				}},
			{Position: 2, Name: "Carl", Handicap: 20, InPot: true, PotOnly: true},
		},
	}
}

func TestSettlementInput(t *testing.T) {
	input, scores := settlementInput(testGame())

	if input.Type != settlement.GameTypeIndividualNet {
		t.Fatalf("Type = %q, want %q", input.Type, settlement.GameTypeIndividualNet)
	}
	if len(input.Players) != 2 {
		t.Fatalf("len(Players) = %d, want 2 (pot-only rider excluded)", len(input.Players))
	}
	if input.Players[0].Name != "Alice" || input.Players[1].Name != "Bob" {
		t.Errorf("player order = %q, %q, want Alice, Bob", input.Players[0].Name, input.Players[1].Name)
	}
	if len(input.PotPlayers) != 1 || input.PotPlayers[0].Name != "Carl" {
		t.Fatalf("PotPlayers = %+v, want one entry for Carl", input.PotPlayers)
	}
	if !input.Players[0].InPot {
		t.Error("Alice should be in the pot pool")
	}

	if input.Bets.Front9 != 5 || input.Bets.Back9 != 5 || input.Bets.Overall != 10 || input.Bets.Pot != 2 {
		t.Errorf("Bets = %+v, want 5/5/10/2", input.Bets)
	}

	// Bob is main-group index 1; his two scores carry over by hole number.
	if _, ok := scores[0]; ok {
		t.Error("Alice has no scores; scores[0] should be absent")
	}
	if scores[1][1] != 5 || scores[1][2] != 4 {
		t.Errorf("scores[1] = %v, want holes 1->5, 2->4", scores[1])
	}
	if _, ok := scores[2]; ok {
		t.Error("pot-only rider must not occupy a scoring slot")
	}
}

func TestSettlementInputNiners(t *testing.T) {
	game := models.Game{
		Kind:       models.GameKindNiners,
		PointValue: decimal.NewFromInt(1),
		Players: []models.GamePlayer{
			{Position: 0, Name: "A"},
			{Position: 1, Name: "B"},
			{Position: 2, Name: "C"},
		},
	}
	input, _ := settlementInput(game)
	if input.Type != settlement.GameTypeNiners {
		t.Fatalf("Type = %q, want %q", input.Type, settlement.GameTypeNiners)
	}
	if input.PointValue != 1 {
		t.Errorf("PointValue = %v, want 1", input.PointValue)
	}
	if len(input.Players) != 3 {
		t.Errorf("len(Players) = %d, want 3", len(input.Players))
	}
}

func TestStrokePolicy(t *testing.T) {
	indexes := map[int]int{1: 7, 2: 15, 3: 1}

	// Automatic-handicap games never consult the stroke-index table.
	auto := settlement.Game{AutoHandicap: true}
	if got := strokePolicy(auto, indexes); got != nil {
		t.Error("auto-handicap game should have a nil stroke policy")
	}

	// No course on record: nothing to allocate from.
	manual := settlement.Game{AutoHandicap: false}
	if got := strokePolicy(manual, nil); got != nil {
		t.Error("manual game without a course should have a nil stroke policy")
	}

	fn := strokePolicy(manual, indexes)
	if fn == nil {
		t.Fatal("manual game with a course should have a stroke policy")
	}

	p := settlement.Player{Handicap: 10}
	tests := []struct {
		hole string
		got  bool
		want bool
	}{
		{"hole 1 (index 7, within handicap 10)", fn(p, 0, 1), true},
		{"hole 2 (index 15, outside handicap 10)", fn(p, 0, 2), false},
		{"hole 3 (index 1, hardest)", fn(p, 0, 3), true},
		{"hole 4 (not on the course table)", fn(p, 0, 4), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.hole, tt.got, tt.want)
		}
	}
}

func TestGameResponseScores(t *testing.T) {
	resp := gameResponse(testGame())
	if len(resp.Players) != 3 {
		t.Fatalf("len(Players) = %d, want 3", len(resp.Players))
	}
	if resp.Players[1].Scores[1] != 5 {
		t.Errorf("Bob hole 1 = %d, want 5", resp.Players[1].Scores[1])
	}
	if resp.Front9Bet != "5.00" || resp.OverallBet != "10.00" {
		t.Errorf("bets = %s/%s, want 5.00/10.00", resp.Front9Bet, resp.OverallBet)
	}
	if !resp.Players[2].PotOnly {
		t.Error("Carl should be marked pot_only")
	}
}
