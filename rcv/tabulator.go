package rcv

import (
	"time"

	"github.com/rcv-tab/rcv-tabulator/internal/log"
	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
	"github.com/rcv-tab/rcv-tabulator/rcv/metrics"
)

// CandidateStatus is the per-round classification of a candidate
// (spec §3 "Continuing" concept). Result does not carry it; callers
// derive it from Result's Winners and Eliminated maps.
type CandidateStatus int

const (
	StatusContinuing CandidateStatus = iota
	StatusElected
	StatusEliminated
)

// tabulation is the mutable state threaded through one full count
// (spec §4.9, §5 — single-threaded, synchronous, deterministic). It is
// never shared across goroutines; nothing here is safe for concurrent
// use, by design.
type tabulation struct {
	cfg  *Config
	cvrs []*CVR

	// order is the canonical, insertion-ordered candidate list computed
	// once at the start of the count (spec §4.2's InvertTally and every
	// tie-break policy key off this same ordering).
	order []CandidateID

	winners    map[CandidateID]int // candidate -> round elected
	eliminated map[CandidateID]int // candidate -> round eliminated

	rounds         []map[CandidateID]decimal.Decimal
	precinctRounds []map[string]map[CandidateID]decimal.Decimal
}

func newTabulation(cfg *Config, cvrs []*CVR) *tabulation {
	return &tabulation{
		cfg:        cfg,
		cvrs:       cvrs,
		order:      cfg.candidateIDs(),
		winners:    make(map[CandidateID]int),
		eliminated: make(map[CandidateID]int),
	}
}

func (t *tabulation) isContinuing(id CandidateID) bool {
	if _, ok := t.winners[id]; ok {
		return false
	}
	if _, ok := t.eliminated[id]; ok {
		return false
	}
	return true
}

// continuingList returns the candidates that are neither elected nor
// eliminated, in canonical order.
func (t *tabulation) continuingList() []CandidateID {
	var out []CandidateID
	for _, id := range t.order {
		if t.isContinuing(id) {
			out = append(out, id)
		}
	}
	return out
}

func (t *tabulation) status(id CandidateID) CandidateStatus {
	if _, ok := t.winners[id]; ok {
		return StatusElected
	}
	if _, ok := t.eliminated[id]; ok {
		return StatusEliminated
	}
	return StatusContinuing
}

// Tabulate runs a complete count against cvrs under cfg and returns the
// round-by-round Result (spec §3, §4.9). It validates cfg with
// ValidateConfig first and counts nothing if that fails.
func Tabulate(cfg *Config, cvrs []*CVR) (*Result, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	contest := cfg.OutputSettings.ContestName
	start := time.Now()
	defer func() {
		metrics.TabulationDuration.WithLabelValues(contest).Observe(time.Since(start).Seconds())
	}()

	if cfg.Rules.WinnerElectionMode == MultiSeatSequentialWinnerTakesAll {
		return tabulateSequentialWinnerTakesAll(cfg, cvrs)
	}

	t := newTabulation(cfg, cvrs)
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.result(), nil
}

// tabulateSequentialWinnerTakesAll implements spec §9's note on
// MULTI_SEAT_SEQUENTIAL_WINNER_TAKES_ALL: each seat is filled by an
// independent single-seat count over a freshly reset copy of every
// CVR (exhaustion, FTV, and audit trail all start over), with
// previously elected candidates removed from the contest. Rounds and
// audit trails from every pass are concatenated in seat order.
func tabulateSequentialWinnerTakesAll(cfg *Config, cvrs []*CVR) (*Result, error) {
	seats := cfg.Rules.NumberOfWinners
	result := &Result{
		Winners:    make(map[CandidateID]int),
		Eliminated: make(map[CandidateID]int),
	}

	elected := make(map[CandidateID]bool)
	roundOffset := 0

	for seat := 1; seat <= seats; seat++ {
		passCfg := *cfg
		passCfg.Rules.WinnerElectionMode = SingleSeat
		passCfg.Rules.NumberOfWinners = 1

		var passCandidates []Candidate
		for _, c := range cfg.Candidates {
			if elected[CandidateID(c.Name)] {
				continue
			}
			passCandidates = append(passCandidates, c)
		}
		passCfg.Candidates = passCandidates

		passCVRs := make([]*CVR, len(cvrs))
		for i, c := range cvrs {
			passCVRs[i] = c.clone()
		}

		t := newTabulation(&passCfg, passCVRs)
		if err := t.run(); err != nil {
			return nil, err
		}

		for id, r := range t.winners {
			result.Winners[id] = roundOffset + r
			elected[id] = true
		}
		for id, r := range t.eliminated {
			result.Eliminated[id] = roundOffset + r
		}
		result.Rounds = append(result.Rounds, t.rounds...)
		for _, c := range t.cvrs {
			result.CVRAudits = append(result.CVRAudits, newCVRAudit(c))
		}
		roundOffset += len(t.rounds)

		if len(result.Winners) == seat {
			log.Info("sequential winner-take-all: seat %d filled after %d rounds", seat, len(t.rounds))
		}
	}

	return result, nil
}

// run drives the round loop of spec §4.9 until every seat is filled or
// every candidate has been resolved (elected or eliminated).
func (t *tabulation) run() error {
	mode := t.cfg.Rules.WinnerElectionMode
	seatsRemaining := t.cfg.Rules.NumberOfWinners

	for round := 1; ; round++ {
		continuing := t.continuingList()
		if len(continuing) == 0 {
			return MessageError(ErrTabulationInvariant, "no continuing candidates remain but seats are still unfilled")
		}

		tally, precinctTally, err := t.applyVotes(round)
		if err != nil {
			return err
		}
		t.rounds = append(t.rounds, tally)
		if precinctTally != nil {
			t.precinctRounds = append(t.precinctRounds, precinctTally)
		}
		metrics.RoundsTotal.WithLabelValues(t.cfg.OutputSettings.ContestName).Inc()

		totalVotes := decimal.Zero()
		for _, id := range continuing {
			totalVotes = totalVotes.Add(tally[id])
		}
		threshold := computeThreshold(totalVotes, seatsRemaining, t.cfg.Rules)

		done, err := t.runRound(mode, round, tally, continuing, threshold, &seatsRemaining)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// runRound applies one round's winner/elimination logic for mode and
// reports whether the count is complete.
func (t *tabulation) runRound(mode WinnerElectionMode, round int, tally map[CandidateID]decimal.Decimal, continuing []CandidateID, threshold decimal.Decimal, seatsRemaining *int) (bool, error) {
	switch mode {
	case SingleSeat:
		return t.runSingleSeatRound(round, tally, continuing, threshold)

	case SingleSeatContinueUntilTwoRemain:
		return t.runContinueUntilTwoRound(round, tally, continuing)

	case MultiSeatStandard:
		return t.runStandardRound(round, tally, continuing, threshold, seatsRemaining)

	case MultiSeatAllowOnlyOneWinnerPerRound:
		return t.runOneWinnerPerRoundRound(round, tally, continuing, threshold, seatsRemaining)

	case MultiSeatBottomsUp:
		return t.runBottomsUpRound(round, tally, continuing, *seatsRemaining)

	default:
		return false, MessageErrorf(ErrTabulationInvariant, "unhandled winner election mode %q", mode)
	}
}

func (t *tabulation) runSingleSeatRound(round int, tally map[CandidateID]decimal.Decimal, continuing []CandidateID, threshold decimal.Decimal) (bool, error) {
	if len(continuing) == 1 {
		t.elect(continuing[0], round)
		return true, nil
	}

	winners := detectWinners(tally, continuing, threshold)
	if len(winners) > 0 {
		winner := winners[0]
		if len(winners) > 1 {
			w, err := t.breakTie(winners, round, tieBreakWinner)
			if err != nil {
				return false, err
			}
			winner = w
		}
		t.elect(winner, round)
		return true, nil
	}

	return t.eliminateRound(round, tally, threshold)
}

func (t *tabulation) runContinueUntilTwoRound(round int, tally map[CandidateID]decimal.Decimal, continuing []CandidateID) (bool, error) {
	if len(continuing) == 2 {
		a, b := continuing[0], continuing[1]
		cmp := tally[a].Cmp(tally[b])
		winner := a
		switch {
		case cmp > 0:
			winner = a
		case cmp < 0:
			winner = b
		default:
			w, err := t.breakTie(continuing, round, tieBreakWinner)
			if err != nil {
				return false, err
			}
			winner = w
		}
		t.elect(winner, round)
		return true, nil
	}

	zero := decimal.Zero()
	return t.eliminateRound(round, tally, zero)
}

func (t *tabulation) runStandardRound(round int, tally map[CandidateID]decimal.Decimal, continuing []CandidateID, threshold decimal.Decimal, seatsRemaining *int) (bool, error) {
	if *seatsRemaining >= len(continuing) {
		for _, id := range continuing {
			t.elect(id, round)
			*seatsRemaining--
		}
		return true, nil
	}

	winners := detectWinners(tally, continuing, threshold)
	if len(winners) > 0 {
		for _, w := range descendingByTally(winners, tally) {
			t.elect(w, round)
			t.transferSurplus(w, tally[w], threshold, t.cfg.Rules.Scale)
			*seatsRemaining--
		}
		if *seatsRemaining <= 0 {
			return true, nil
		}
		return false, nil
	}

	return t.eliminateRound(round, tally, threshold)
}

func (t *tabulation) runOneWinnerPerRoundRound(round int, tally map[CandidateID]decimal.Decimal, continuing []CandidateID, threshold decimal.Decimal, seatsRemaining *int) (bool, error) {
	if *seatsRemaining >= len(continuing) {
		for _, id := range continuing {
			t.elect(id, round)
			*seatsRemaining--
		}
		return true, nil
	}

	winners := detectWinners(tally, continuing, threshold)
	if len(winners) > 0 {
		ordered := descendingByTally(winners, tally)
		top := ordered[0]
		if len(ordered) > 1 && tally[ordered[0]].Equal(tally[ordered[1]]) {
			tied := []CandidateID{ordered[0]}
			for _, id := range ordered[1:] {
				if tally[id].Equal(tally[ordered[0]]) {
					tied = append(tied, id)
				}
			}
			w, err := t.breakTie(tied, round, tieBreakWinner)
			if err != nil {
				return false, err
			}
			top = w
		}
		t.elect(top, round)
		t.transferSurplus(top, tally[top], threshold, t.cfg.Rules.Scale)
		*seatsRemaining--
		if *seatsRemaining <= 0 {
			return true, nil
		}
		return false, nil
	}

	return t.eliminateRound(round, tally, threshold)
}

func (t *tabulation) runBottomsUpRound(round int, tally map[CandidateID]decimal.Decimal, continuing []CandidateID, seatsRemaining int) (bool, error) {
	if len(continuing) == seatsRemaining {
		for _, id := range continuing {
			t.elect(id, round)
		}
		return true, nil
	}

	zero := decimal.Zero()
	return t.eliminateRound(round, tally, zero)
}

// eliminateRound runs the elimination cascade of spec §4.8 for one
// round and always returns false (it never completes a count by
// itself).
func (t *tabulation) eliminateRound(round int, tally map[CandidateID]decimal.Decimal, threshold decimal.Decimal) (bool, error) {
	out, err := t.eliminate(round, tally, threshold)
	if err != nil {
		return false, err
	}
	for _, id := range out.Candidates {
		t.eliminated[id] = round
		log.Info("round %d: eliminated %s (%s)", round, id, out.Note)
	}
	metrics.EliminationsTotal.WithLabelValues(t.cfg.OutputSettings.ContestName, out.Strategy).Add(float64(len(out.Candidates)))
	return false, nil
}

func (t *tabulation) elect(id CandidateID, round int) {
	t.winners[id] = round
	log.Info("round %d: elected %s", round, id)
}

// descendingByTally sorts ids by tally descending, breaking equal
// tallies by canonical order, with a simple insertion sort — mirroring
// CVR.sortedRanks's dependency-free approach for small slices.
func descendingByTally(ids []CandidateID, tally map[CandidateID]decimal.Decimal) []CandidateID {
	out := make([]CandidateID, len(ids))
	copy(out, ids)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && tally[out[j]].GreaterThan(tally[out[j-1]]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// result assembles the public Result from the finished tabulation.
func (t *tabulation) result() *Result {
	r := &Result{
		Winners:    t.winners,
		Eliminated: t.eliminated,
		Rounds:     t.rounds,
	}
	if len(t.precinctRounds) > 0 {
		r.PrecinctRounds = t.precinctRounds
	}
	for _, c := range t.cvrs {
		r.CVRAudits = append(r.CVRAudits, newCVRAudit(c))
	}
	return r
}
