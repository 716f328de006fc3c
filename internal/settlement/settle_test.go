package settlement

import (
	"math"
	"reflect"
	"testing"
)

func TestSettleIndividualNetFrontNineOnly(t *testing.T) {
	// Two players, handicaps 10 and 16, $5 on the front nine, only the front
	// nine scored. P1 nets 40 against P2's 42 and collects the bet.
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players: []Player{
			{Name: "P1", Handicap: 10, InPot: true},
			{Name: "P2", Handicap: 16, InPot: true},
		},
		Bets: Bets{Front9: 5},
	}
	scores := HoleScores{0: frontOnly(5), 1: frontOnly(5)}
	scores[1][1] = 10 // P2: 10 + 5*8 = 50 gross

	res := SettleIndividualNet(g, scores, nil)
	if res == nil {
		t.Fatal("expected a settlement, got nil")
	}

	if res.Results[0].Front9Net != 40 || res.Results[1].Front9Net != 42 {
		t.Fatalf("front nets = %v/%v, want 40/42", res.Results[0].Front9Net, res.Results[1].Front9Net)
	}
	if res.Winners.Front9 == nil || *res.Winners.Front9 != 0 {
		t.Fatalf("front9 winner = %v, want P1", res.Winners.Front9)
	}
	if res.Winners.Back9 != nil || res.Winners.Overall != nil {
		t.Fatal("unscored segments must have no winner")
	}

	if res.Payments[0].Total != 5 || res.Payments[1].Total != -5 {
		t.Fatalf("totals = %v/%v, want +5/-5", res.Payments[0].Total, res.Payments[1].Total)
	}
	want := []Transaction{{From: "P2", To: "P1", Amount: 5}}
	if !reflect.DeepEqual(res.Transactions, want) {
		t.Fatalf("transactions = %+v, want %+v", res.Transactions, want)
	}
}

func TestSettleIndividualNetFullGameWithPot(t *testing.T) {
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players: []Player{
			{Name: "P1", Handicap: 10, InPot: true},
			{Name: "P2", Handicap: 16, InPot: true},
		},
		PotPlayers: []PotPlayer{{Name: "Carl", Handicap: 20}},
		Bets:       Bets{Front9: 5, Back9: 5, Overall: 10, Pot: 2},
	}
	// P1 shoots 5s (90 gross, 80 net), P2 shoots 6s (108 gross, 92 net).
	scores := HoleScores{0: fullRound(5), 1: fullRound(6)}

	res := SettleIndividualNet(g, scores, nil)
	if res == nil {
		t.Fatal("expected a settlement, got nil")
	}

	// P1 sweeps every segment: 5 + 5 + 10 + pot 2*(3-1).
	if res.Payments[0].Total != 24 {
		t.Fatalf("P1 total = %v, want 24", res.Payments[0].Total)
	}
	if res.Payments[1].Total != -22 {
		t.Fatalf("P2 total = %v, want -22", res.Payments[1].Total)
	}
	// Carl is only in the pot and only on the losing side of it.
	if res.Payments[2].Name != "Carl" || res.Payments[2].Total != -2 {
		t.Fatalf("Carl payment = %+v, want -2", res.Payments[2])
	}
	if res.Payments[2].Front9 != 0 || res.Payments[2].Overall != 0 {
		t.Fatal("pot players must not touch segment bets")
	}

	// Zero-sum across the whole pool, pot players included.
	var sum float64
	for _, p := range res.Payments {
		sum += p.Total
	}
	if math.Abs(sum) > settledEpsilon {
		t.Fatalf("payments sum = %v, want 0", sum)
	}

	want := []Transaction{
		{From: "P2", To: "P1", Amount: 22},
		{From: "Carl", To: "P1", Amount: 2},
	}
	if !reflect.DeepEqual(res.Transactions, want) {
		t.Fatalf("transactions = %+v, want %+v", res.Transactions, want)
	}
}

func TestSettleIndividualNetZeroSumProperty(t *testing.T) {
	// Three players with assorted bets; the main group always nets to zero
	// on every settled segment.
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players: []Player{
			{Name: "A", Handicap: 4, InPot: true},
			{Name: "B", Handicap: 11, InPot: true},
			{Name: "C", Handicap: 20, InPot: true},
		},
		Bets: Bets{Front9: 3, Back9: 7, Overall: 12, Pot: 5},
	}
	scores := HoleScores{0: fullRound(4), 1: fullRound(5), 2: fullRound(6)}

	res := SettleIndividualNet(g, scores, nil)
	if res == nil {
		t.Fatal("expected a settlement, got nil")
	}
	for _, segment := range []func(PlayerPayment) float64{
		func(p PlayerPayment) float64 { return p.Front9 },
		func(p PlayerPayment) float64 { return p.Back9 },
		func(p PlayerPayment) float64 { return p.Overall },
		func(p PlayerPayment) float64 { return p.Pot },
		func(p PlayerPayment) float64 { return p.Total },
	} {
		var sum float64
		for _, p := range res.Payments {
			sum += segment(p)
		}
		if math.Abs(sum) > settledEpsilon {
			t.Fatalf("segment sum = %v, want 0 (payments %+v)", sum, res.Payments)
		}
	}
}

func TestSettleIndividualNetTieSuppressesPayout(t *testing.T) {
	// Identical rounds off identical handicaps: every segment ties, nobody pays.
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players: []Player{
			{Name: "P1", Handicap: 9, InPot: true},
			{Name: "P2", Handicap: 9, InPot: true},
		},
		Bets: Bets{Front9: 5, Back9: 5, Overall: 100, Pot: 20},
	}
	scores := HoleScores{0: fullRound(5), 1: fullRound(5)}

	res := SettleIndividualNet(g, scores, nil)
	if res == nil {
		t.Fatal("expected a settlement, got nil")
	}
	if res.Winners.Overall != nil {
		t.Fatalf("overall winner = %d, want none on a tie", *res.Winners.Overall)
	}
	for _, p := range res.Payments {
		if p.Total != 0 {
			t.Fatalf("tied game must settle to zero, got %+v", p)
		}
	}
	if len(res.Transactions) != 0 {
		t.Fatalf("tied game emitted transactions: %+v", res.Transactions)
	}
}

func TestSettleIndividualNetIdempotent(t *testing.T) {
	g := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players: []Player{
			{Name: "P1", Handicap: 10, InPot: true},
			{Name: "P2", Handicap: 16, InPot: true},
		},
		Bets: Bets{Front9: 5, Overall: 10},
	}
	scores := HoleScores{0: fullRound(5), 1: fullRound(6)}

	first := SettleIndividualNet(g, scores, nil)
	second := SettleIndividualNet(g, scores, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("settlement is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestSettleIndividualNetNotApplicable(t *testing.T) {
	base := Game{
		Type:         GameTypeIndividualNet,
		AutoHandicap: true,
		Players: []Player{
			{Name: "P1", Handicap: 10},
			{Name: "P2", Handicap: 16},
		},
		Bets: Bets{Front9: 5},
	}

	t.Run("wrong game type", func(t *testing.T) {
		g := base
		g.Type = GameTypeNiners
		if SettleIndividualNet(g, HoleScores{}, nil) != nil {
			t.Fatal("want nil for a niners game")
		}
	})
	t.Run("too few players", func(t *testing.T) {
		g := base
		g.Players = g.Players[:1]
		if SettleIndividualNet(g, HoleScores{}, nil) != nil {
			t.Fatal("want nil for a single player")
		}
	})
	t.Run("no bets configured", func(t *testing.T) {
		g := base
		g.Bets = Bets{}
		if SettleIndividualNet(g, HoleScores{}, nil) != nil {
			t.Fatal("want nil with no stakes")
		}
	})
}

func TestSettleNiners(t *testing.T) {
	g := ninersGame(0.5)
	// A best every hole, C worst: totals 90/54/18 at 50 cents a point.
	scores := HoleScores{0: fullRound(3), 1: fullRound(4), 2: fullRound(5)}

	res := SettleNiners(g, scores, nil)
	if res == nil {
		t.Fatal("expected a settlement, got nil")
	}
	if want := [3]int{90, 54, 18}; res.Totals != want {
		t.Fatalf("totals = %v, want %v", res.Totals, want)
	}

	// Payouts 45/27/9, average 27: balances +18/0/-18.
	if res.Payments[0].Total != 18 || res.Payments[1].Total != 0 || res.Payments[2].Total != -18 {
		t.Fatalf("payments = %+v, want +18/0/-18", res.Payments)
	}
	var sum float64
	for _, p := range res.Payments {
		sum += p.Total
	}
	if math.Abs(sum) > settledEpsilon {
		t.Fatalf("payments sum = %v, want 0", sum)
	}

	want := []Transaction{{From: "C", To: "A", Amount: 18}}
	if !reflect.DeepEqual(res.Transactions, want) {
		t.Fatalf("transactions = %+v, want %+v", res.Transactions, want)
	}
}

func TestSettleNinersPartialRound(t *testing.T) {
	g := ninersGame(1)
	// Only holes 1-3 scored by everyone; hole 4 is missing C.
	scores := HoleScores{
		0: {1: 3, 2: 3, 3: 3, 4: 3},
		1: {1: 4, 2: 4, 3: 4, 4: 4},
		2: {1: 5, 2: 5, 3: 5},
	}

	res := SettleNiners(g, scores, nil)
	if res == nil {
		t.Fatal("expected a settlement, got nil")
	}
	if len(res.HolePoints) != 3 {
		t.Fatalf("scored holes = %d, want 3", len(res.HolePoints))
	}
	if want := [3]int{15, 9, 3}; res.Totals != want {
		t.Fatalf("totals = %v, want %v", res.Totals, want)
	}
}

func TestSettleNinersNotApplicable(t *testing.T) {
	t.Run("wrong player count", func(t *testing.T) {
		g := ninersGame(1)
		g.Players = append(g.Players, Player{Name: "D"})
		if SettleNiners(g, HoleScores{}, nil) != nil {
			t.Fatal("want nil for four players")
		}
	})
	t.Run("no point value", func(t *testing.T) {
		g := ninersGame(0)
		if SettleNiners(g, HoleScores{}, nil) != nil {
			t.Fatal("want nil without a point value")
		}
	})
	t.Run("wrong game type", func(t *testing.T) {
		g := ninersGame(1)
		g.Type = GameTypeIndividualNet
		if SettleNiners(g, HoleScores{}, nil) != nil {
			t.Fatal("want nil for a non-niners game")
		}
	})
}
