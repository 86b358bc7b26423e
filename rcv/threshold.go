package rcv

import "github.com/rcv-tab/rcv-tabulator/rcv/decimal"

// computeThreshold implements spec §4.5: a Droop-style quota by
// default, a Hare quota when rules.HareQuota is set.
//
// Resolution of an explicit Open Question in spec §9 ("the winner test
// uses strict > against the threshold"): this engine keeps strict `>`
// exactly as spec.md §4.5 and §8 property 5 specify, and does not offer
// a >= knob. That single comparison only behaves correctly — matching
// ordinary majority arithmetic (3 of 5 votes wins a one-seat race) —
// when it runs against the raw, un-rounded quotient: rounding the
// quotient up first and then still requiring strict `>` overshoots by
// a full vote whenever the quotient already has a fractional part.
// So computeThreshold always returns the exact fixed-scale quotient.
// rules.NonIntegerWinningThreshold does not change that value; it is
// read instead by result formatting code that wants to report a
// human-facing integer quota (ceiling the quotient) versus the raw
// fractional one.
func computeThreshold(totalVotes decimal.Decimal, seatsRemaining int, rules Rules) decimal.Decimal {
	divisor := seatsRemaining + 1
	if rules.HareQuota {
		divisor = seatsRemaining
	}
	if divisor <= 0 {
		return decimal.Zero()
	}

	return decimal.Divide(totalVotes, decimal.NewFromInt(int64(divisor)), rules.Scale)
}

// DisplayThreshold renders threshold for a human-facing report: ceiled
// to the next whole number unless rules.NonIntegerWinningThreshold asks
// to keep it fractional.
func DisplayThreshold(threshold decimal.Decimal, rules Rules) decimal.Decimal {
	if rules.NonIntegerWinningThreshold {
		return threshold
	}
	return decimal.CeilToInt(threshold)
}

// detectWinners returns every continuing candidate whose round tally
// strictly exceeds threshold, in t.order's canonical order
// (spec §4.5: "Multiple winners in one round are possible and all are
// elected simultaneously").
func detectWinners(tally map[CandidateID]decimal.Decimal, continuing []CandidateID, threshold decimal.Decimal) []CandidateID {
	var winners []CandidateID
	for _, id := range continuing {
		if tally[id].GreaterThan(threshold) {
			winners = append(winners, id)
		}
	}
	return winners
}
