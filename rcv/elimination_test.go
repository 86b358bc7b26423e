package rcv

import (
	"testing"

	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
)

func TestDropUWI(t *testing.T) {
	tab := newTestTabulation("A", "B", "UWI")
	tab.cfg.Rules.UndeclaredWriteInLabel = "UWI"

	tally := map[CandidateID]decimal.Decimal{
		"A":   decimal.NewFromInt(5),
		"B":   decimal.NewFromInt(3),
		"UWI": decimal.NewFromInt(2),
	}

	out, err := tab.eliminate(1, tally, decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Candidates) != 1 || out.Candidates[0] != "UWI" {
		t.Errorf("round 1 should drop UWI first, got %v", out.Candidates)
	}
}

func TestDropUWIOnlyAppliesInRoundOne(t *testing.T) {
	tab := newTestTabulation("A", "B", "UWI")
	tab.cfg.Rules.UndeclaredWriteInLabel = "UWI"

	tally := map[CandidateID]decimal.Decimal{
		"A":   decimal.NewFromInt(5),
		"B":   decimal.NewFromInt(3),
		"UWI": decimal.NewFromInt(2),
	}

	out, err := tab.eliminate(2, tally, decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Candidates) != 1 || out.Candidates[0] != "UWI" {
		t.Errorf("regular elimination should still reach UWI as the lowest tally, got %v", out.Candidates)
	}
	if out.Strategy != "regular" {
		t.Errorf("round 2 should not use the drop_uwi strategy, got %q", out.Strategy)
	}
}

func TestDropBelowThreshold(t *testing.T) {
	tab := newTestTabulation("A", "B", "C")
	tab.cfg.Rules.MinimumVoteThreshold = 3

	tally := map[CandidateID]decimal.Decimal{
		"A": decimal.NewFromInt(10),
		"B": decimal.NewFromInt(2),
		"C": decimal.NewFromInt(1),
	}

	out, err := tab.eliminate(2, tally, decimal.NewFromInt(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Candidates) != 2 {
		t.Fatalf("expected both B and C below the floor, got %v", out.Candidates)
	}
}

// TestBatchEliminationE3 mirrors the spec's worked example: tallies
// {A:10, B:1, C:2, D:3} with batch elimination enabled eliminate
// B, C, and D together in one round, leaving A as the sole continuing
// candidate.
func TestBatchEliminationE3(t *testing.T) {
	tab := newTestTabulation("A", "B", "C", "D")
	tab.cfg.Rules.BatchElimination = true

	tally := map[CandidateID]decimal.Decimal{
		"A": decimal.NewFromInt(10),
		"B": decimal.NewFromInt(1),
		"C": decimal.NewFromInt(2),
		"D": decimal.NewFromInt(3),
	}

	out, err := tab.eliminate(2, tally, decimal.NewFromInt(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Strategy != "batch" {
		t.Fatalf("expected the batch strategy to fire, got %q with %v", out.Strategy, out.Candidates)
	}

	got := map[CandidateID]bool{}
	for _, c := range out.Candidates {
		got[c] = true
	}
	for _, want := range []CandidateID{"B", "C", "D"} {
		if !got[want] {
			t.Errorf("expected %v to be batch-eliminated, got %v", want, out.Candidates)
		}
	}
	if got["A"] {
		t.Errorf("the leading candidate A must never be batch-eliminated")
	}
}

func TestBatchEliminationDisabledFallsThroughToRegular(t *testing.T) {
	tab := newTestTabulation("A", "B", "C", "D")
	tab.cfg.Rules.BatchElimination = false

	tally := map[CandidateID]decimal.Decimal{
		"A": decimal.NewFromInt(10),
		"B": decimal.NewFromInt(1),
		"C": decimal.NewFromInt(2),
		"D": decimal.NewFromInt(3),
	}

	out, err := tab.eliminate(2, tally, decimal.NewFromInt(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Strategy != "regular" || len(out.Candidates) != 1 || out.Candidates[0] != "B" {
		t.Errorf("without batch elimination only the single lowest candidate B should be eliminated, got %v", out)
	}
}

func TestRegularEliminationBreaksTies(t *testing.T) {
	tab := newTestTabulation("A", "B", "C")
	tab.cfg.Rules.TiebreakMode = TiebreakGeneratePermutation
	tab.cfg.Rules.RandomSeed = 99

	tally := map[CandidateID]decimal.Decimal{
		"A": decimal.NewFromInt(10),
		"B": decimal.NewFromInt(3),
		"C": decimal.NewFromInt(3),
	}

	out, err := tab.eliminate(2, tally, decimal.NewFromInt(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Candidates) != 1 || (out.Candidates[0] != "B" && out.Candidates[0] != "C") {
		t.Errorf("expected exactly one of the tied bottom candidates, got %v", out.Candidates)
	}
}
