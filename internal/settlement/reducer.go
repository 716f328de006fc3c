package settlement

import (
	"math"
	"sort"
)

// reducer.go — debt netting.
//
// One shared reducer serves every game type: the game modules only produce
// signed balances, and this module turns them into the payments that clear
// them. The greedy largest-creditor / deepest-debtor match is deterministic
// and close to transaction-minimal, which is all a foursome settling in the
// clubhouse needs.

// settledEpsilon treats currency amounts within a cent of zero as settled,
// absorbing float rounding from handicap arithmetic.
const settledEpsilon = 0.01

// round2 rounds a currency amount to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SettleDebts reduces a set of signed balances to the payments that zero them.
// Balances must sum to (approximately) zero; the game modules guarantee this
// by construction for individual-net games and by centering on the mean for
// niners.
//
// The algorithm: creditors sorted by balance descending, debtors sorted most
// negative first, then repeatedly transfer min(credit, debt) between the heads
// of the two lists, rounded to cents, advancing past any balance that falls
// inside the settled epsilon. Stable sorts keep the output deterministic when
// balances tie.
func SettleDebts(balances []Balance) []Transaction {
	var creditors, debtors []Balance
	for _, b := range balances {
		switch {
		case b.Amount > settledEpsilon:
			creditors = append(creditors, b)
		case b.Amount < -settledEpsilon:
			debtors = append(debtors, b)
		}
	}
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Amount > creditors[j].Amount
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Amount < debtors[j].Amount
	})

	txs := []Transaction{}
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		c := &creditors[ci]
		d := &debtors[di]

		amount := round2(math.Min(c.Amount, -d.Amount))
		if amount > 0 {
			txs = append(txs, Transaction{From: d.Name, To: c.Name, Amount: amount})
		}
		c.Amount -= amount
		d.Amount += amount

		if c.Amount < settledEpsilon {
			ci++
		}
		if d.Amount > -settledEpsilon {
			di++
		}
	}
	return txs
}
