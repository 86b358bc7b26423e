package rcv

import "github.com/rcv-tab/rcv-tabulator/rcv/decimal"

// Result is the complete output of a count (spec §3, §6): the
// round-by-round tallies plus every candidate's final disposition and
// the full per-CVR audit trail.
type Result struct {
	// Winners and Eliminated map a candidate to the round it was
	// resolved in. A candidate absent from both was still continuing
	// when the count stopped, as the runners-up are once the last seat
	// is filled.
	Winners    map[CandidateID]int
	Eliminated map[CandidateID]int

	// Rounds holds one tally snapshot per round, indexed from round 1
	// at Rounds[0].
	Rounds []map[CandidateID]decimal.Decimal

	// PrecinctRounds mirrors Rounds, keyed additionally by precinct,
	// populated only when OutputSettings.TabulateByPrecinct is set.
	PrecinctRounds []map[string]map[CandidateID]decimal.Decimal

	// CVRAudits is the read-only post-tabulation trail for every ballot
	// (spec §3's CVR.AuditTrail), safe to serialize for a jurisdiction's
	// audit package.
	CVRAudits []CVRAudit
}

// RoundCount returns the number of rounds the count ran for.
func (r *Result) RoundCount() int {
	return len(r.Rounds)
}

// WinnersInOrder returns every elected candidate sorted by the round
// they were elected in, ties broken by CandidateID for a stable report.
func (r *Result) WinnersInOrder() []CandidateID {
	out := make([]CandidateID, 0, len(r.Winners))
	for id := range r.Winners {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			ri, rj := r.Winners[out[j]], r.Winners[out[j-1]]
			if ri < rj || (ri == rj && out[j] < out[j-1]) {
				out[j], out[j-1] = out[j-1], out[j]
			} else {
				break
			}
		}
	}
	return out
}
