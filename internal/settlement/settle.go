package settlement

// settle.go — the engine's entry points: turn winners (or points) into signed
// per-player amounts and feed the balances through the shared debt reducer.
//
// Both entry points are defensive rather than fallible: a game the engine
// cannot settle yields nil, and the caller decides whether that is worth
// surfacing to the user.

// segmentAmounts applies one segment's wager: the winner collects bet*(N-1)
// and every other eligible player pays the bet. No winner, no bet, or fewer
// than two eligible players means nobody pays anything.
func segmentAmounts(bet float64, winner *int, numPlayers int) []float64 {
	amounts := make([]float64, numPlayers)
	if bet <= 0 || winner == nil || numPlayers < 2 {
		return amounts
	}
	for i := range amounts {
		if i == *winner {
			amounts[i] = bet * float64(numPlayers-1)
		} else {
			amounts[i] = -bet
		}
	}
	return amounts
}

// SettleIndividualNet settles a net stroke-play game with front-nine,
// back-nine, overall, and pot wagers.
//
// Returns nil when the game is not an individual-net game, has fewer than two
// players, or has no bet configured on any segment. Partial scoring is not an
// error: an incomplete segment simply has no winner and pays out nothing.
//
// The pot pool is the main players flagged into the pot plus all pot players.
// Its winner is the main group's overall winner; pot players never hold net
// scores, so they can only lose the pot.
func SettleIndividualNet(g Game, scores HoleScores, strokeFn StrokeFunc) *IndividualNetResult {
	if g.Type != GameTypeIndividualNet {
		return nil
	}
	if len(g.Players) < 2 {
		return nil
	}
	b := g.Bets
	if b.Front9 <= 0 && b.Back9 <= 0 && b.Overall <= 0 && b.Pot <= 0 {
		return nil
	}

	results := AllPlayerScores(g, scores, strokeFn)
	winners := DetermineWinners(results)

	numMain := len(g.Players)
	front := segmentAmounts(b.Front9, winners.Front9, numMain)
	back := segmentAmounts(b.Back9, winners.Back9, numMain)
	overall := segmentAmounts(b.Overall, winners.Overall, numMain)

	// Pot amounts are indexed over the pot pool: flagged main players first,
	// then every pot player. The winner must itself be in the pool.
	var poolMain []int
	for i, p := range g.Players {
		if p.InPot {
			poolMain = append(poolMain, i)
		}
	}
	poolSize := len(poolMain) + len(g.PotPlayers)
	potByMain := make([]float64, numMain)
	potByPot := make([]float64, len(g.PotPlayers))
	if b.Pot > 0 && winners.Pot != nil && poolSize >= 2 {
		winnerInPool := false
		for _, idx := range poolMain {
			if idx == *winners.Pot {
				winnerInPool = true
			}
		}
		if winnerInPool {
			for _, idx := range poolMain {
				if idx == *winners.Pot {
					potByMain[idx] = b.Pot * float64(poolSize-1)
				} else {
					potByMain[idx] = -b.Pot
				}
			}
			for i := range g.PotPlayers {
				potByPot[i] = -b.Pot
			}
		}
	}

	payments := make([]PlayerPayment, 0, numMain+len(g.PotPlayers))
	balances := make([]Balance, 0, numMain+len(g.PotPlayers))
	for i, p := range g.Players {
		total := round2(front[i] + back[i] + overall[i] + potByMain[i])
		payments = append(payments, PlayerPayment{
			Name:    p.Name,
			Front9:  front[i],
			Back9:   back[i],
			Overall: overall[i],
			Pot:     potByMain[i],
			Total:   total,
		})
		balances = append(balances, Balance{Name: p.Name, Amount: total})
	}
	for i, p := range g.PotPlayers {
		total := round2(potByPot[i])
		payments = append(payments, PlayerPayment{
			Name:  p.Name,
			Pot:   potByPot[i],
			Total: total,
		})
		balances = append(balances, Balance{Name: p.Name, Amount: total})
	}

	return &IndividualNetResult{
		Results:      results,
		Winners:      winners,
		Payments:     payments,
		Transactions: SettleDebts(balances),
	}
}

// SettleNiners settles a 3-player niners game. Each player's payout is their
// point total times the configured point value; because that is a payout and
// not a redistribution, balances are centered on the group's average payout
// before reduction so the transfers still sum to zero.
//
// Returns nil unless the game is a niners game with exactly three players and
// a positive point value.
func SettleNiners(g Game, scores HoleScores, strokeFn StrokeFunc) *NinersResult {
	if g.Type != GameTypeNiners || len(g.Players) != ninersPlayerCount {
		return nil
	}
	if g.PointValue <= 0 {
		return nil
	}

	holes := HoleByHolePoints(g, scores, strokeFn)
	var totals [3]int
	for _, hp := range holes {
		for i, p := range hp.Points {
			totals[i] += p
		}
	}

	var sum float64
	amounts := [3]float64{}
	for i, pts := range totals {
		amounts[i] = float64(pts) * g.PointValue
		sum += amounts[i]
	}
	avg := sum / ninersPlayerCount

	payments := make([]PlayerPayment, ninersPlayerCount)
	balances := make([]Balance, ninersPlayerCount)
	for i, p := range g.Players {
		net := round2(amounts[i] - avg)
		payments[i] = PlayerPayment{Name: p.Name, Points: totals[i], Total: net}
		balances[i] = Balance{Name: p.Name, Amount: amounts[i] - avg}
	}

	return &NinersResult{
		HolePoints:   holes,
		Totals:       totals,
		Payments:     payments,
		Transactions: SettleDebts(balances),
	}
}
