package rcv

// overvoteDecision is the outcome of the decision table in spec §4.3.
type overvoteDecision int

const (
	decisionNone overvoteDecision = iota
	decisionExhaust
	decisionSkip
	decisionIgnore
)

// statusLookup answers whether a candidate is Continuing, for the
// purposes of the overvote decision table and vote application.
type statusLookup func(CandidateID) bool

// decideOvervote implements the exhaustive table of spec §4.3.
//
// candidates is the set of candidate identifiers marked at one rank of
// one ballot. hasExplicitOvervoteLabel reports whether that set is, in
// fact, the single explicit overvote marker rather than real
// candidates (spec §4.3 invariant: the marker never co-occurs with a
// candidate).
func decideOvervote(candidates []CandidateID, hasExplicitOvervoteLabel bool, rule OvervoteRule, continuing statusLookup) (overvoteDecision, error) {
	if hasExplicitOvervoteLabel {
		if len(candidates) != 1 {
			return decisionNone, MessageErrorf(ErrTabulationInvariant,
				"explicit overvote label co-occurred with %d other candidate(s) at one rank", len(candidates)-1)
		}
		switch rule {
		case OvervoteExhaustImmediately:
			return decisionExhaust, nil
		case OvervoteAlwaysSkipToNextRank:
			return decisionSkip, nil
		default:
			return decisionNone, MessageErrorf(ErrTabulationInvariant,
				"overvote rule %q cannot see an explicit overvote label; config validation should have rejected this combination", rule)
		}
	}

	if len(candidates) <= 1 {
		return decisionNone, nil
	}

	switch rule {
	case OvervoteExhaustImmediately:
		return decisionExhaust, nil
	case OvervoteAlwaysSkipToNextRank:
		return decisionSkip, nil
	}

	k := 0
	for _, c := range candidates {
		if continuing(c) {
			k++
		}
	}

	// Order matters here and mirrors spec §4.3's table top to bottom:
	// the "any continuing" rules fire for k==1 too, before the k==1
	// "single continiuing is counted" row gets a chance to apply.
	switch {
	case k == 0:
		return decisionNone, nil
	case rule == OvervoteExhaustIfAnyContinuing:
		return decisionExhaust, nil
	case rule == OvervoteIgnoreIfAnyContinuing:
		return decisionIgnore, nil
	case k == 1:
		return decisionNone, nil
	case rule == OvervoteExhaustIfMultiple:
		return decisionExhaust, nil
	case rule == OvervoteIgnoreIfMultiple:
		return decisionIgnore, nil
	default:
		return decisionNone, MessageErrorf(ErrTabulationInvariant, "unreachable overvote rule %q for k=%d", rule, k)
	}
}
