package rcv

import (
	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
	"github.com/rcv-tab/rcv-tabulator/rcv/metrics"
)

// applyVotes walks every non-exhausted CVR through one round of the
// algorithm in spec §4.4, accumulating the round's tally (and, when
// per-precinct tabulation is enabled, the matching precinct tally).
func (t *tabulation) applyVotes(round int) (map[CandidateID]decimal.Decimal, map[string]map[CandidateID]decimal.Decimal, error) {
	tally := make(map[CandidateID]decimal.Decimal, len(t.order))
	for _, id := range t.order {
		tally[id] = decimal.Zero()
	}

	var precinctTally map[string]map[CandidateID]decimal.Decimal
	if t.cfg.OutputSettings.TabulateByPrecinct {
		precinctTally = make(map[string]map[CandidateID]decimal.Decimal)
	}

	for _, c := range t.cvrs {
		if c.Exhausted {
			continue
		}
		c.CurrentRecipient = nil

		if err := t.applyOneVote(c, round, tally, precinctTally); err != nil {
			return nil, nil, err
		}
	}

	return tally, precinctTally, nil
}

func (t *tabulation) applyOneVote(c *CVR, round int, tally map[CandidateID]decimal.Decimal, precinctTally map[string]map[CandidateID]decimal.Decimal) error {
	rules := t.cfg.Rules

	ranks := c.sortedRanks()
	if rules.MaxRankingsAllowed > 0 {
		cut := ranks[:0]
		for _, r := range ranks {
			if r <= rules.MaxRankingsAllowed {
				cut = append(cut, r)
			}
		}
		ranks = cut
	}

	lastRank := 0
	seen := make(map[CandidateID]bool)

	for _, rank := range ranks {
		candidates := c.Rankings[rank]

		hasExplicit := rules.OvervoteLabel != "" && containsID(candidates, CandidateID(rules.OvervoteLabel))

		decision, err := decideOvervote(candidates, hasExplicit, rules.OvervoteRule, t.isContinuing)
		if err != nil {
			return err
		}

		switch decision {
		case decisionExhaust:
			t.recordExhausted(c, round, "overvote")
			return nil
		case decisionIgnore:
			c.recordIgnored(round, "overvote")
			return nil
		case decisionSkip:
			continue
		}

		if rules.MaxSkippedRanksAllowed != nil && rank-lastRank > *rules.MaxSkippedRanksAllowed+1 {
			t.recordExhausted(c, round, "undervote")
			return nil
		}

		if rules.ExhaustOnDuplicateCandidate {
			for _, cand := range candidates {
				if seen[cand] {
					t.recordExhausted(c, round, "duplicate")
					return nil
				}
			}
		}

		var continuingHere CandidateID
		found := false
		for _, cand := range candidates {
			if t.isContinuing(cand) {
				continuingHere = cand
				found = true
				break
			}
		}

		if found {
			tally[continuingHere] = tally[continuingHere].Add(c.FTV)
			if precinctTally != nil && c.Precinct != "" {
				if precinctTally[c.Precinct] == nil {
					precinctTally[c.Precinct] = make(map[CandidateID]decimal.Decimal)
					for _, id := range t.order {
						precinctTally[c.Precinct][id] = decimal.Zero()
					}
				}
				precinctTally[c.Precinct][continuingHere] = precinctTally[c.Precinct][continuingHere].Add(c.FTV)
			}
			c.recordCountedFor(round, continuingHere)
			return nil
		}

		for _, cand := range candidates {
			seen[cand] = true
		}
		lastRank = rank
	}

	t.recordExhausted(c, round, "no continuing candidates")
	return nil
}

func containsID(set []CandidateID, id CandidateID) bool {
	for _, c := range set {
		if c == id {
			return true
		}
	}
	return false
}

func (t *tabulation) recordExhausted(c *CVR, round int, reason string) {
	c.markExhausted(round, reason)
	metrics.ExhaustedBallotsTotal.WithLabelValues(t.cfg.OutputSettings.ContestName, reason).Inc()
}
