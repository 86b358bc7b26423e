package rcv

import (
	"math/rand/v2"

	"github.com/rcv-tab/rcv-tabulator/internal/log"
	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
)

// tieBreakKind distinguishes a loser tie-break (regular elimination,
// spec §4.8.4) from a winner tie-break (the single-highest-tally pick in
// MULTI_SEAT_ALLOW_ONLY_ONE_WINNER_PER_ROUND and the final pick in
// SINGLE_SEAT_CONTINUE_UNTIL_TWO_CANDIDATES_REMAIN, spec §4.5–§4.6).
type tieBreakKind int

const (
	tieBreakLoser tieBreakKind = iota
	tieBreakWinner
)

// canonicalOrder returns the subset of tied present in t.order,
// preserving t.order's sequence — the "canonical ordering of S" spec
// §4.7's RANDOM mode calls for, independent of whatever order the
// caller happened to build the tied slice in.
func (t *tabulation) canonicalOrder(tied []CandidateID) []CandidateID {
	set := make(map[CandidateID]bool, len(tied))
	for _, c := range tied {
		set[c] = true
	}
	out := make([]CandidateID, 0, len(tied))
	for _, id := range t.order {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}

// breakTie resolves a tie among tied (spec §4.7). kind selects whether
// the returned candidate is the one eliminated (loser) or the one
// elected (winner).
func (t *tabulation) breakTie(tied []CandidateID, round int, kind tieBreakKind) (CandidateID, error) {
	if len(tied) == 0 {
		return "", MessageError(ErrTabulationInvariant, "breakTie called with an empty tied set")
	}
	canon := t.canonicalOrder(tied)
	if len(canon) == 1 {
		return canon[0], nil
	}

	switch t.cfg.Rules.TiebreakMode {
	case TiebreakRandom:
		return t.breakTieRandom(canon, round), nil

	case TiebreakInteractive:
		return t.breakTieInteractive(canon, round, kind)

	case TiebreakPreviousRoundCountsThenRandom:
		if winner, ok := t.breakTiePreviousRounds(canon, round, kind); ok {
			return winner, nil
		}
		log.Warn("tie-break: no prior round had a unique extremum among %v, falling back to random", canon)
		return t.breakTieRandom(canon, round), nil

	case TiebreakPreviousRoundCountsThenInteractive:
		if winner, ok := t.breakTiePreviousRounds(canon, round, kind); ok {
			return winner, nil
		}
		log.Warn("tie-break: no prior round had a unique extremum among %v, falling back to the oracle", canon)
		return t.breakTieInteractive(canon, round, kind)

	case TiebreakGeneratePermutation:
		return t.breakTiePermutation(canon, kind), nil

	default:
		return "", MessageErrorf(ErrTabulationInvariant, "unknown tiebreak mode %q", t.cfg.Rules.TiebreakMode)
	}
}

// breakTieRandom seeds a PRNG from the configured seed XORed with the
// current round and draws uniformly over canon (spec §4.7).
func (t *tabulation) breakTieRandom(canon []CandidateID, round int) CandidateID {
	seed := t.cfg.Rules.RandomSeed ^ uint64(round)
	rng := rand.New(rand.NewPCG(seed, seed))
	return canon[rng.IntN(len(canon))]
}

func (t *tabulation) breakTieInteractive(canon []CandidateID, round int, kind tieBreakKind) (CandidateID, error) {
	if t.cfg.Oracle == nil {
		return "", MessageError(ErrTieBreakUnresolved, "INTERACTIVE tiebreak mode requires a TieBreakOracle")
	}
	choice, err := t.cfg.Oracle.Resolve(round, canon, kind == tieBreakWinner)
	if err != nil {
		return "", MessageErrorf(ErrTieBreakUnresolved, "tie-break oracle: %v", err)
	}
	if !containsID(canon, choice) {
		return "", MessageErrorf(ErrTieBreakUnresolved, "tie-break oracle returned %q, which is not among the tied candidates %v", choice, canon)
	}
	return choice, nil
}

// breakTiePreviousRounds walks rounds backward from round-1 looking for
// the most recent stage at which the tied candidates had an unequal
// number of votes — the same rule the Scottish STV count applies:
// "tie breaking is done according to the number of votes at the end of
// the most recently preceding stage of the count at which they had an
// unequal number of votes". ok is false if no such stage exists.
func (t *tabulation) breakTiePreviousRounds(canon []CandidateID, round int, kind tieBreakKind) (CandidateID, bool) {
	for r := round - 1; r >= 1; r-- {
		tally, ok := t.historicalTally(r)
		if !ok {
			continue
		}
		var best CandidateID
		var bestVotes decimal.Decimal
		unique := true
		first := true
		for _, id := range canon {
			v, present := tally[id]
			if !present {
				continue
			}
			if first {
				best, bestVotes, first = id, v, false
				continue
			}
			cmp := v.Cmp(bestVotes)
			better := (kind == tieBreakWinner && cmp > 0) || (kind == tieBreakLoser && cmp < 0)
			if better {
				best, bestVotes, unique = id, v, true
			} else if v.Equal(bestVotes) {
				unique = false
			}
		}
		if !first && unique {
			return best, true
		}
	}
	return "", false
}

func (t *tabulation) historicalTally(round int) (map[CandidateID]decimal.Decimal, bool) {
	if round < 1 || round > len(t.rounds) {
		return nil, false
	}
	return t.rounds[round-1], true
}

// breakTiePermutation resolves the tie by position in the
// once-per-configuration shuffled candidate list (spec §4.7, §8
// property 8): the tied candidate appearing earliest in the permutation
// wins a winner tie-break, and the one appearing last loses a loser
// tie-break.
func (t *tabulation) breakTiePermutation(canon []CandidateID, kind tieBreakKind) CandidateID {
	perm := t.permutation()
	pos := make(map[CandidateID]int, len(perm))
	for i, id := range perm {
		pos[id] = i
	}

	best := canon[0]
	for _, id := range canon[1:] {
		if kind == tieBreakWinner {
			if pos[id] < pos[best] {
				best = id
			}
		} else if pos[id] > pos[best] {
			best = id
		}
	}
	return best
}

// permutation returns Config's cached GENERATE_PERMUTATION shuffle,
// computing it on first use from RandomSeed and the candidate list
// only (spec §8 property 8).
func (t *tabulation) permutation() []CandidateID {
	if t.cfg.permutation != nil {
		return t.cfg.permutation
	}
	perm := make([]CandidateID, len(t.order))
	copy(perm, t.order)
	rng := rand.New(rand.NewPCG(t.cfg.Rules.RandomSeed, t.cfg.Rules.RandomSeed))
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	t.cfg.permutation = perm
	return perm
}
