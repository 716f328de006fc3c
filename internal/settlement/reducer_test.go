package settlement

import (
	"math"
	"reflect"
	"testing"
)

func TestSettleDebts(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
		want     []Transaction
	}{
		{
			name: "two players one payment",
			balances: []Balance{
				{Name: "P1", Amount: 5},
				{Name: "P2", Amount: -5},
			},
			want: []Transaction{{From: "P2", To: "P1", Amount: 5}},
		},
		{
			name: "one creditor two debtors",
			balances: []Balance{
				{Name: "P1", Amount: 24},
				{Name: "P2", Amount: -22},
				{Name: "Carl", Amount: -2},
			},
			want: []Transaction{
				{From: "P2", To: "P1", Amount: 22},
				{From: "Carl", To: "P1", Amount: 2},
			},
		},
		{
			name: "largest creditor matched with deepest debtor first",
			balances: []Balance{
				{Name: "A", Amount: -10},
				{Name: "B", Amount: 30},
				{Name: "C", Amount: -20},
				{Name: "D", Amount: 10},
				{Name: "E", Amount: -10},
			},
			want: []Transaction{
				{From: "C", To: "B", Amount: 20},
				{From: "A", To: "B", Amount: 10},
				{From: "E", To: "D", Amount: 10},
			},
		},
		{
			name:     "all settled already",
			balances: []Balance{{Name: "A", Amount: 0}, {Name: "B", Amount: 0.005}},
			want:     []Transaction{},
		},
		{
			name:     "empty input",
			balances: nil,
			want:     []Transaction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SettleDebts(tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SettleDebts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Applying the emitted transactions must reproduce the input balances: every
// player ends within a cent of zero.
func TestSettleDebtsReproducesBalances(t *testing.T) {
	cases := [][]Balance{
		{{Name: "A", Amount: 12.5}, {Name: "B", Amount: -7.5}, {Name: "C", Amount: -5}},
		{{Name: "A", Amount: 36}, {Name: "B", Amount: 0}, {Name: "C", Amount: -36}},
		{{Name: "A", Amount: 3.33}, {Name: "B", Amount: 3.33}, {Name: "C", Amount: -6.66}},
		{{Name: "A", Amount: 0.333333}, {Name: "B", Amount: 0.333333}, {Name: "C", Amount: -0.666666}},
	}

	for _, balances := range cases {
		remaining := make(map[string]float64, len(balances))
		for _, b := range balances {
			remaining[b.Name] += b.Amount
		}
		for _, tx := range SettleDebts(balances) {
			if tx.Amount <= 0 {
				t.Fatalf("non-positive transaction amount: %+v", tx)
			}
			remaining[tx.From] += tx.Amount
			remaining[tx.To] -= tx.Amount
		}
		for name, left := range remaining {
			if math.Abs(left) > settledEpsilon {
				t.Fatalf("balances %+v: %s left with %v after settling", balances, name, left)
			}
		}
	}
}

// The reducer is deterministic: identical input always yields the identical
// transaction list, including when balances tie in magnitude.
func TestSettleDebtsDeterministic(t *testing.T) {
	balances := []Balance{
		{Name: "A", Amount: 10},
		{Name: "B", Amount: 10},
		{Name: "C", Amount: -10},
		{Name: "D", Amount: -10},
	}
	first := SettleDebts(balances)
	for i := 0; i < 5; i++ {
		if got := SettleDebts(balances); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
	// Ties keep input order: A pairs with C, B with D.
	want := []Transaction{
		{From: "C", To: "A", Amount: 10},
		{From: "D", To: "B", Amount: 10},
	}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("SettleDebts() = %+v, want %+v", first, want)
	}
}

func TestSettleDebtsRoundsToCents(t *testing.T) {
	balances := []Balance{
		{Name: "A", Amount: 1.0 / 3},
		{Name: "B", Amount: 1.0 / 3},
		{Name: "C", Amount: -2.0 / 3},
	}
	for _, tx := range SettleDebts(balances) {
		if tx.Amount != round2(tx.Amount) {
			t.Fatalf("transaction not rounded to cents: %+v", tx)
		}
	}
}
