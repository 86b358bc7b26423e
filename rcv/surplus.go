package rcv

import (
	"github.com/rcv-tab/rcv-tabulator/internal/log"
	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
	"github.com/rcv-tab/rcv-tabulator/rcv/metrics"
)

// transferSurplus implements spec §4.6: every CVR currently routed
// through a newly elected winner has its fractional transfer value
// reduced by the winner's surplus fraction. The winner itself stays in
// place as Winner; it simply stops being Continuing, so later rounds'
// vote application (spec §4.4) routes those CVRs past it to their next
// continuing preference.
func (t *tabulation) transferSurplus(winner CandidateID, winnerVotes, threshold decimal.Decimal, scale int32) {
	surplus := winnerVotes.Sub(threshold)
	if surplus.IsZero() || surplus.IsNegative() {
		return
	}
	fraction := decimal.Divide(surplus, winnerVotes, scale)
	log.Debug("surplus transfer: %s surplus=%s fraction=%s", winner, surplus.String(), fraction.String())
	metrics.SurplusTransfersTotal.WithLabelValues(t.cfg.OutputSettings.ContestName).Inc()

	for _, c := range t.cvrs {
		if c.Exhausted {
			continue
		}
		if c.CurrentRecipient == nil || *c.CurrentRecipient != winner {
			continue
		}
		c.FTV = decimal.Multiply(c.FTV, fraction, scale)
	}
}
