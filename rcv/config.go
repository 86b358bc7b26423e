package rcv

// EngineVersion is the embedded version string a contest configuration's
// TabulatorVersion must match (spec §4.10, §6).
const EngineVersion = "2.1"

// CandidateID is the opaque identifier drawn from the contest
// configuration (spec §3). Rules.UndeclaredWriteInLabel, when
// write-ins are treated as undeclared, is one reserved
// CandidateID conditionally added to the candidate list.
type CandidateID string

// OvervoteRule selects which row of the overvote decision table
// (spec §4.3) applies.
type OvervoteRule string

const (
	OvervoteExhaustImmediately     OvervoteRule = "EXHAUST_IMMEDIATELY"
	OvervoteAlwaysSkipToNextRank   OvervoteRule = "ALWAYS_SKIP_TO_NEXT_RANK"
	OvervoteExhaustIfAnyContinuing OvervoteRule = "EXHAUST_IF_ANY_CONTINUING"
	OvervoteIgnoreIfAnyContinuing  OvervoteRule = "IGNORE_IF_ANY_CONTINUING"
	OvervoteExhaustIfMultiple      OvervoteRule = "EXHAUST_IF_MULTIPLE_CONTINUING"
	OvervoteIgnoreIfMultiple       OvervoteRule = "IGNORE_IF_MULTIPLE_CONTINUING"
)

func (r OvervoteRule) valid() bool {
	switch r {
	case OvervoteExhaustImmediately, OvervoteAlwaysSkipToNextRank,
		OvervoteExhaustIfAnyContinuing, OvervoteIgnoreIfAnyContinuing,
		OvervoteExhaustIfMultiple, OvervoteIgnoreIfMultiple:
		return true
	}
	return false
}

// WinnerElectionMode selects among the modes of spec §4.5–§4.6.
type WinnerElectionMode string

const (
	SingleSeat                          WinnerElectionMode = "SINGLE_SEAT"
	SingleSeatContinueUntilTwoRemain     WinnerElectionMode = "SINGLE_SEAT_CONTINUE_UNTIL_TWO_CANDIDATES_REMAIN"
	MultiSeatAllowOnlyOneWinnerPerRound  WinnerElectionMode = "MULTI_SEAT_ALLOW_ONLY_ONE_WINNER_PER_ROUND"
	MultiSeatBottomsUp                  WinnerElectionMode = "MULTI_SEAT_BOTTOMS_UP"
	MultiSeatSequentialWinnerTakesAll    WinnerElectionMode = "MULTI_SEAT_SEQUENTIAL_WINNER_TAKES_ALL"
	MultiSeatStandard                   WinnerElectionMode = "MULTI_SEAT_STANDARD"
)

func (m WinnerElectionMode) valid() bool {
	switch m {
	case SingleSeat, SingleSeatContinueUntilTwoRemain, MultiSeatAllowOnlyOneWinnerPerRound,
		MultiSeatBottomsUp, MultiSeatSequentialWinnerTakesAll, MultiSeatStandard:
		return true
	}
	return false
}

func (m WinnerElectionMode) isMultiSeat() bool {
	switch m {
	case MultiSeatAllowOnlyOneWinnerPerRound, MultiSeatBottomsUp, MultiSeatSequentialWinnerTakesAll, MultiSeatStandard:
		return true
	}
	return false
}

// TiebreakMode selects among the policies of spec §4.7.
type TiebreakMode string

const (
	TiebreakRandom                             TiebreakMode = "RANDOM"
	TiebreakInteractive                        TiebreakMode = "INTERACTIVE"
	TiebreakPreviousRoundCountsThenRandom       TiebreakMode = "PREVIOUS_ROUND_COUNTS_THEN_RANDOM"
	TiebreakPreviousRoundCountsThenInteractive  TiebreakMode = "PREVIOUS_ROUND_COUNTS_THEN_INTERACTIVE"
	TiebreakGeneratePermutation                 TiebreakMode = "GENERATE_PERMUTATION"
)

func (m TiebreakMode) valid() bool {
	switch m {
	case TiebreakRandom, TiebreakInteractive, TiebreakPreviousRoundCountsThenRandom,
		TiebreakPreviousRoundCountsThenInteractive, TiebreakGeneratePermutation:
		return true
	}
	return false
}

func (m TiebreakMode) usesRandomness() bool {
	switch m {
	case TiebreakRandom, TiebreakPreviousRoundCountsThenRandom, TiebreakGeneratePermutation:
		return true
	}
	return false
}

// CVRProvider names the vendor that produced a CVR source, spec §6.
type CVRProvider string

const (
	ProviderCDF CVRProvider = "CDF"
	ProviderESS CVRProvider = "ESS"
	ProviderDominion CVRProvider = "Dominion"
	ProviderHart CVRProvider = "Hart"
	ProviderClearBallot CVRProvider = "ClearBallot"
)

// CVRSource describes one input file's provenance and column layout.
// Parsing the file itself is out of scope (spec §1); the core only
// validates the descriptor.
type CVRSource struct {
	FilePath              string
	Provider              CVRProvider
	FirstVoteColumnIndex  int
	FirstVoteRowIndex     int
	IDColumnIndex         int
	PrecinctColumnIndex   int
}

// Candidate describes one entry on the contest's candidate list.
type Candidate struct {
	Name     string
	Code     string
	Excluded bool
}

// Rules is the semantic rules block of spec §6.
type Rules struct {
	TiebreakMode       TiebreakMode
	OvervoteRule       OvervoteRule
	WinnerElectionMode WinnerElectionMode

	MaxRankingsAllowed    int // 0 means "max" (spec §6)
	MaxSkippedRanksAllowed *int // nil means "unlimited"

	NumberOfWinners int
	Scale           int32 // decimalPlacesForVoteArithmetic

	MinimumVoteThreshold     int
	NonIntegerWinningThreshold bool
	HareQuota                bool
	BatchElimination         bool
	ExhaustOnDuplicateCandidate bool

	TreatBlankAsUndeclaredWriteIn bool
	UndeclaredWriteInLabel        string
	OvervoteLabel                 string
	UndervoteLabel                string

	RandomSeed     uint64
	RandomSeedSet  bool
}

// OutputSettings is metadata plus the per-precinct toggle of spec §6.
type OutputSettings struct {
	ContestName       string
	Jurisdiction      string
	Office            string
	Date              string
	OutputDirectory   string
	TabulateByPrecinct bool
	GenerateCDFJSON   bool
}

// TieBreakOracle is the injected capability behind TiebreakInteractive
// (spec §4.7, §5): a blocking call to a human or an external decision
// service that must answer with one member of the tied set.
type TieBreakOracle interface {
	Resolve(round int, tied []CandidateID, forWinner bool) (CandidateID, error)
}

// Config is the validated contest configuration the tabulator consumes.
// Construct it directly (its source file is out of scope, spec §1);
// Tabulate runs ValidateConfig on it before counting.
type Config struct {
	TabulatorVersion string
	OutputSettings   OutputSettings
	CVRSources       []CVRSource
	Candidates       []Candidate
	Rules            Rules

	// Oracle answers INTERACTIVE tie-breaks. Required when
	// Rules.TiebreakMode is TiebreakInteractive or one of the
	// "...THEN_INTERACTIVE" fallback modes.
	Oracle TieBreakOracle

	// permutation is computed once, by the first GENERATE_PERMUTATION
	// tie-break of a count, and cached here (spec §4.7, §8 property 8).
	// It is a function of RandomSeed and the candidate list only.
	permutation []CandidateID
}

// candidateIDs returns the configured candidate list in insertion order,
// with the UWI bucket appended when write-ins are treated as an
// undeclared candidate. This is the canonical order referenced by
// spec §9 "order-sensitive iteration".
func (c *Config) candidateIDs() []CandidateID {
	ids := make([]CandidateID, 0, len(c.Candidates)+1)
	for _, cand := range c.Candidates {
		if cand.Excluded {
			continue
		}
		ids = append(ids, CandidateID(cand.Name))
	}
	if c.Rules.TreatBlankAsUndeclaredWriteIn {
		ids = append(ids, CandidateID(c.Rules.UndeclaredWriteInLabel))
	}
	return ids
}
