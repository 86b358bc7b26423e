package rcv

import (
	"github.com/google/uuid"
	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
)

// Outcome classifies one audit_trail entry (spec §3).
type Outcome string

const (
	OutcomeCountedFor Outcome = "counted-for"
	OutcomeIgnored    Outcome = "ignored"
	OutcomeExhausted  Outcome = "exhausted"
)

// AuditEntry is one (round, outcome) pair in a CVR's audit trail.
type AuditEntry struct {
	Round      int
	Outcome    Outcome
	Candidate  CandidateID // set only when Outcome == OutcomeCountedFor
	Reason     string      // set for OutcomeIgnored / OutcomeExhausted
}

// Ranking maps a 1-based rank to the set of candidates marked at that
// rank. Ranks are sparse: a CVR's Rankings map may skip integers
// (spec §3).
type Ranking map[int][]CandidateID

// CVR is one voter's ranked ballot plus its audit bookkeeping
// (spec §3). The immutable fields are set once at construction; the
// mutable fields are owned exclusively by the tabulator driver for the
// duration of one Tabulate call.
type CVR struct {
	// Immutable.
	SourceFile string
	RecordID   string
	RawRow     []string
	Rankings   Ranking
	Precinct   string // optional; "" means no precinct

	// Mutable per round.
	Exhausted        bool
	ExhaustedReason  string
	CurrentRecipient *CandidateID
	FTV              decimal.Decimal
	AuditTrail       []AuditEntry
}

// NewCVR builds a CVR with FTV initialized to 1, per spec §3. If
// recordID is empty (a source with no id column, spec §6), a stable
// record ID is minted with uuid.NewString so every CVR is addressable
// in the audit trail even without vendor-supplied identifiers.
func NewCVR(sourceFile, recordID string, rawRow []string, rankings Ranking, precinct string) *CVR {
	if recordID == "" {
		recordID = uuid.NewString()
	}
	return &CVR{
		SourceFile: sourceFile,
		RecordID:   recordID,
		RawRow:     rawRow,
		Rankings:   rankings,
		Precinct:   precinct,
		FTV:        decimal.NewFromInt(1),
	}
}

// clone produces an independent copy of c with mutable state reset to
// the start of a fresh tabulation pass. Used by
// MULTI_SEAT_SEQUENTIAL_WINNER_TAKES_ALL (spec §4.6, §9) so that each
// pass starts from the original ballots rather than the previous pass's
// exhausted/FTV state.
func (c *CVR) clone() *CVR {
	rawRow := make([]string, len(c.RawRow))
	copy(rawRow, c.RawRow)
	return &CVR{
		SourceFile: c.SourceFile,
		RecordID:   c.RecordID,
		RawRow:     rawRow,
		Rankings:   c.Rankings,
		Precinct:   c.Precinct,
		FTV:        decimal.NewFromInt(1),
	}
}

// maxRank returns the highest rank present on the ballot, or 0 if there
// are none.
func (c *CVR) maxRank() int {
	max := 0
	for r := range c.Rankings {
		if r > max {
			max = r
		}
	}
	return max
}

// sortedRanks returns the ranks present on the ballot in ascending
// order.
func (c *CVR) sortedRanks() []int {
	ranks := make([]int, 0, len(c.Rankings))
	for r := range c.Rankings {
		ranks = append(ranks, r)
	}
	// Simple insertion sort: ballots carry at most a few dozen ranks,
	// and a stable, dependency-free sort keeps this package's only
	// ordering-sensitive primitive easy to audit.
	for i := 1; i < len(ranks); i++ {
		for j := i; j > 0 && ranks[j-1] > ranks[j]; j-- {
			ranks[j-1], ranks[j] = ranks[j], ranks[j-1]
		}
	}
	return ranks
}

// markExhausted sets the terminal exhausted state. Once true, Exhausted
// never flips back (spec §3).
func (c *CVR) markExhausted(round int, reason string) {
	c.Exhausted = true
	c.ExhaustedReason = reason
	c.CurrentRecipient = nil
	c.AuditTrail = append(c.AuditTrail, AuditEntry{Round: round, Outcome: OutcomeExhausted, Reason: reason})
}

func (c *CVR) recordIgnored(round int, reason string) {
	c.AuditTrail = append(c.AuditTrail, AuditEntry{Round: round, Outcome: OutcomeIgnored, Reason: reason})
}

func (c *CVR) recordCountedFor(round int, candidate CandidateID) {
	c.CurrentRecipient = &candidate
	c.AuditTrail = append(c.AuditTrail, AuditEntry{Round: round, Outcome: OutcomeCountedFor, Candidate: candidate})
}

// CVRAudit is the read-only snapshot of a CVR exposed to callers after
// tabulation completes (spec §9: "expose CVRs to external audit only
// after tabulation completes").
type CVRAudit struct {
	RecordID        string
	Precinct        string
	Exhausted       bool
	ExhaustedReason string
	FinalRecipient  *CandidateID
	FinalFTV        decimal.Decimal
	AuditTrail      []AuditEntry
}

func newCVRAudit(c *CVR) CVRAudit {
	trail := make([]AuditEntry, len(c.AuditTrail))
	copy(trail, c.AuditTrail)
	return CVRAudit{
		RecordID:        c.RecordID,
		Precinct:        c.Precinct,
		Exhausted:       c.Exhausted,
		ExhaustedReason: c.ExhaustedReason,
		FinalRecipient:  c.CurrentRecipient,
		FinalFTV:        c.FTV,
		AuditTrail:      trail,
	}
}
