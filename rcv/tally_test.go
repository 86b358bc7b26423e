package rcv

import (
	"testing"

	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
)

func TestInvertTally(t *testing.T) {
	tally := map[CandidateID]decimal.Decimal{
		"A": decimal.NewFromInt(10),
		"B": decimal.NewFromInt(1),
		"C": decimal.NewFromInt(2),
		"D": decimal.NewFromInt(3),
	}
	include := []CandidateID{"A", "B", "C", "D"}

	buckets := InvertTally(tally, include)

	want := []struct {
		votes int64
		ids   []CandidateID
	}{
		{1, []CandidateID{"B"}},
		{2, []CandidateID{"C"}},
		{3, []CandidateID{"D"}},
		{10, []CandidateID{"A"}},
	}
	if len(buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(buckets), len(want))
	}
	for i, w := range want {
		if !buckets[i].Votes.Equal(decimal.NewFromInt(w.votes)) {
			t.Errorf("bucket %d: votes = %s, want %d", i, buckets[i].Votes.String(), w.votes)
		}
		if len(buckets[i].Candidates) != len(w.ids) || buckets[i].Candidates[0] != w.ids[0] {
			t.Errorf("bucket %d: candidates = %v, want %v", i, buckets[i].Candidates, w.ids)
		}
	}
}

func TestInvertTallyGroupsTiesPreservingIncludeOrder(t *testing.T) {
	tally := map[CandidateID]decimal.Decimal{
		"A": decimal.NewFromInt(5),
		"B": decimal.NewFromInt(5),
		"C": decimal.NewFromInt(1),
	}
	include := []CandidateID{"B", "A", "C"}

	buckets := InvertTally(tally, include)

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Candidates[0] != "C" {
		t.Errorf("lowest bucket should be C, got %v", buckets[0].Candidates)
	}
	tied := buckets[1].Candidates
	if len(tied) != 2 || tied[0] != "B" || tied[1] != "A" {
		t.Errorf("tied bucket should preserve include order [B A], got %v", tied)
	}
}
