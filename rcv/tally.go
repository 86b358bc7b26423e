package rcv

import "github.com/rcv-tab/rcv-tabulator/rcv/decimal"

// TallyBucket groups every candidate sharing one tally value, in the
// order they occur in the inclusion set passed to InvertTally
// (spec §4.2).
type TallyBucket struct {
	Votes      decimal.Decimal
	Candidates []CandidateID
}

// InvertTally turns a candidate->tally map into buckets sorted
// ascending by tally. Every candidate in include appears exactly once,
// in exactly one bucket, and candidates sharing a tally keep the
// relative order they had in include (spec §4.2: "downstream consumers
// must not assume alphabetical order, but MUST be stable given
// identical input").
func InvertTally(tally map[CandidateID]decimal.Decimal, include []CandidateID) []TallyBucket {
	var buckets []TallyBucket
	for _, cand := range include {
		v := tally[cand]
		placed := false
		for i := range buckets {
			if buckets[i].Votes.Equal(v) {
				buckets[i].Candidates = append(buckets[i].Candidates, cand)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, TallyBucket{Votes: v, Candidates: []CandidateID{cand}})
		}
	}

	// Insertion sort on Votes ascending; stable, so buckets built in
	// include's order only ever move relative to each other, never
	// internally.
	for i := 1; i < len(buckets); i++ {
		for j := i; j > 0 && buckets[j-1].Votes.GreaterThan(buckets[j].Votes); j-- {
			buckets[j-1], buckets[j] = buckets[j], buckets[j-1]
		}
	}
	return buckets
}
