package rcv

import "testing"

func alwaysContinuing(set map[CandidateID]bool) statusLookup {
	return func(c CandidateID) bool { return set[c] }
}

func TestDecideOvervote(t *testing.T) {
	for _, tt := range []struct {
		name       string
		candidates []CandidateID
		explicit   bool
		rule       OvervoteRule
		continuing map[CandidateID]bool
		want       overvoteDecision
		wantErr    bool
	}{
		{
			name:       "explicit label, exhaust immediately",
			candidates: []CandidateID{"overvote"},
			explicit:   true,
			rule:       OvervoteExhaustImmediately,
			want:       decisionExhaust,
		},
		{
			name:       "explicit label, always skip",
			candidates: []CandidateID{"overvote"},
			explicit:   true,
			rule:       OvervoteAlwaysSkipToNextRank,
			want:       decisionSkip,
		},
		{
			name:       "single candidate, no overvote",
			candidates: []CandidateID{"A"},
			rule:       OvervoteExhaustIfAnyContinuing,
			want:       decisionNone,
		},
		{
			name:       "multiple, exhaust immediately",
			candidates: []CandidateID{"A", "B"},
			rule:       OvervoteExhaustImmediately,
			want:       decisionExhaust,
		},
		{
			name:       "multiple, always skip",
			candidates: []CandidateID{"A", "B"},
			rule:       OvervoteAlwaysSkipToNextRank,
			want:       decisionSkip,
		},
		{
			name:       "no continuing candidates among the set",
			candidates: []CandidateID{"A", "B"},
			rule:       OvervoteExhaustIfAnyContinuing,
			continuing: map[CandidateID]bool{},
			want:       decisionNone,
		},
		{
			name:       "one continuing, any-continuing rule still exhausts",
			candidates: []CandidateID{"A", "B"},
			rule:       OvervoteExhaustIfAnyContinuing,
			continuing: map[CandidateID]bool{"A": true},
			want:       decisionExhaust,
		},
		{
			name:       "one continuing, any-continuing ignore rule",
			candidates: []CandidateID{"A", "B"},
			rule:       OvervoteIgnoreIfAnyContinuing,
			continuing: map[CandidateID]bool{"A": true},
			want:       decisionIgnore,
		},
		{
			name:       "one continuing, multiple-only rule counts it",
			candidates: []CandidateID{"A", "B"},
			rule:       OvervoteExhaustIfMultiple,
			continuing: map[CandidateID]bool{"A": true},
			want:       decisionNone,
		},
		{
			name:       "two continuing, exhaust if multiple",
			candidates: []CandidateID{"A", "B"},
			rule:       OvervoteExhaustIfMultiple,
			continuing: map[CandidateID]bool{"A": true, "B": true},
			want:       decisionExhaust,
		},
		{
			name:       "two continuing, ignore if multiple",
			candidates: []CandidateID{"A", "B"},
			rule:       OvervoteIgnoreIfMultiple,
			continuing: map[CandidateID]bool{"A": true, "B": true},
			want:       decisionIgnore,
		},
		{
			name:       "explicit label co-occurring with a candidate is an invariant violation",
			candidates: []CandidateID{"overvote", "A"},
			explicit:   true,
			rule:       OvervoteExhaustImmediately,
			wantErr:    true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decideOvervote(tt.candidates, tt.explicit, tt.rule, alwaysContinuing(tt.continuing))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("decideOvervote() = %v, want %v", got, tt.want)
			}
		})
	}
}
