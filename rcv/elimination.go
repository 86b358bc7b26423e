package rcv

import (
	"github.com/rcv-tab/rcv-tabulator/internal/log"
	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
)

// eliminationOutcome is the shared return shape of every strategy in
// spec §4.8 ("Express as a variant type or an ordered list of strategy
// objects; do not rely on inheritance"): a list of eliminated
// candidates (possibly empty) and a short audit note.
type eliminationOutcome struct {
	Candidates []CandidateID
	Strategy   string
	Note       string
}

// eliminate runs the four strategies of spec §4.8 in order and returns
// the first non-empty outcome. It is a fatal invariant violation
// (spec §7 TabulationInvariant) for all four to yield empty when no
// winner was declared this round.
func (t *tabulation) eliminate(round int, tally map[CandidateID]decimal.Decimal, threshold decimal.Decimal) (eliminationOutcome, error) {
	continuing := t.continuingList()

	if out := t.dropUWI(round, tally, continuing); len(out.Candidates) > 0 {
		return out, nil
	}
	if out := t.dropBelowThreshold(tally, continuing); len(out.Candidates) > 0 {
		return out, nil
	}
	if out := t.batchEliminate(tally, continuing); len(out.Candidates) > 0 {
		return out, nil
	}
	out, err := t.regularEliminate(round, tally, continuing, threshold)
	if err != nil {
		return eliminationOutcome{}, err
	}
	if len(out.Candidates) == 0 {
		return eliminationOutcome{}, MessageError(ErrTabulationInvariant,
			"all elimination strategies yielded no candidates while no winner was declared this round")
	}
	return out, nil
}

// dropUWI is strategy 1 (spec §4.8.1): only in round 1, only when the
// undeclared-write-in bucket exists, is still continuing, and has
// received at least one vote.
func (t *tabulation) dropUWI(round int, tally map[CandidateID]decimal.Decimal, continuing []CandidateID) eliminationOutcome {
	if round != 1 {
		return eliminationOutcome{}
	}
	uwi := CandidateID(t.cfg.Rules.UndeclaredWriteInLabel)
	if uwi == "" || !t.isContinuing(uwi) {
		return eliminationOutcome{}
	}
	if !tally[uwi].GreaterThan(decimal.Zero()) {
		return eliminationOutcome{}
	}
	log.Debug("round %d: dropping undeclared write-in bucket", round)
	return eliminationOutcome{Candidates: []CandidateID{uwi}, Strategy: "drop_uwi", Note: "undeclared write-in dropped"}
}

// dropBelowThreshold is strategy 2 (spec §4.8.2): every continuing
// candidate whose tally is strictly below the configured
// minimumVoteThreshold floor is eliminated at once.
func (t *tabulation) dropBelowThreshold(tally map[CandidateID]decimal.Decimal, continuing []CandidateID) eliminationOutcome {
	if t.cfg.Rules.MinimumVoteThreshold <= 0 {
		return eliminationOutcome{}
	}
	floor := decimal.NewFromInt(int64(t.cfg.Rules.MinimumVoteThreshold))

	var out []CandidateID
	for _, id := range continuing {
		if tally[id].LessThan(floor) {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return eliminationOutcome{}
	}
	return eliminationOutcome{Candidates: out, Strategy: "below_threshold", Note: "below minimum vote threshold"}
}

// batchEliminate is strategy 3 (spec §4.8.3). It walks the ascending
// tally buckets of the continuing set, tracking the largest bucket
// prefix whose combined votes remain below the votes of the bucket
// immediately following it — that prefix can never catch up, no matter
// how later transfers land, and is eliminated together. A prefix of
// fewer than two candidates is not reported (spec: "a single candidate
// is left to the regular path").
func (t *tabulation) batchEliminate(tally map[CandidateID]decimal.Decimal, continuing []CandidateID) eliminationOutcome {
	if !t.cfg.Rules.BatchElimination {
		return eliminationOutcome{}
	}

	buckets := InvertTally(tally, continuing)
	runningTotal := decimal.Zero()
	var flagged []CandidateID
	var nextHighest decimal.Decimal

	for i, b := range buckets {
		if runningTotal.LessThan(b.Votes) {
			flagged = flagged[:0]
			for _, prev := range buckets[:i] {
				flagged = append(flagged, prev.Candidates...)
			}
			nextHighest = b.Votes
		}
		runningTotal = runningTotal.Add(b.Votes)
	}

	if len(flagged) < 2 {
		return eliminationOutcome{}
	}
	log.Debug("batch elimination: %v (running_total=%s, next_highest=%s)", flagged, runningTotal.String(), nextHighest.String())
	return eliminationOutcome{Candidates: flagged, Strategy: "batch", Note: "batch eliminated: mathematically unable to catch the next-highest continuing candidate"}
}

// regularEliminate is strategy 4 (spec §4.8.4): the unique lowest-tally
// continuing candidate is eliminated; a tie at the bottom goes to the
// configured tie-break policy.
func (t *tabulation) regularEliminate(round int, tally map[CandidateID]decimal.Decimal, continuing []CandidateID, threshold decimal.Decimal) (eliminationOutcome, error) {
	if len(continuing) == 0 {
		return eliminationOutcome{}, nil
	}
	buckets := InvertTally(tally, continuing)
	lowest := buckets[0]

	if len(lowest.Candidates) == 1 {
		return eliminationOutcome{Candidates: lowest.Candidates, Strategy: "regular", Note: "lowest tally"}, nil
	}

	loser, err := t.breakTie(lowest.Candidates, round, tieBreakLoser)
	if err != nil {
		return eliminationOutcome{}, err
	}
	return eliminationOutcome{Candidates: []CandidateID{loser}, Strategy: "regular", Note: "lowest tally, tie broken"}, nil
}
