package rcv

import (
	"fmt"
	"strings"

	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
)

const (
	minVoteColumnIndex      = 1
	maxVoteColumnIndex      = 1000
	minVoteRowIndex         = 1
	maxVoteRowIndex         = 100000
	maxMinimumVoteThreshold = 1000000
)

// ValidateConfig checks a contest configuration against the rules of
// spec §4.10 and returns a single ErrConfigInvalid wrapping every
// violation found, not just the first — an operator correcting a
// contest config wants the whole list in one pass, not one error at a
// time. It does not check that the contest name is set, that a CVR
// source's file exists, or that file paths are unique across sources.
func ValidateConfig(cfg *Config) error {
	var violations []string
	report := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	if cfg == nil {
		return MessageError(ErrConfigInvalid, "configuration is nil")
	}

	if cfg.TabulatorVersion != EngineVersion {
		report("tabulatorVersion %q does not match engine version %q", cfg.TabulatorVersion, EngineVersion)
	}

	if !cfg.Rules.TiebreakMode.valid() {
		report("tiebreakMode %q is not a recognized policy", cfg.Rules.TiebreakMode)
	}
	if !cfg.Rules.OvervoteRule.valid() {
		report("overvoteRule %q is not a recognized rule", cfg.Rules.OvervoteRule)
	}
	if !cfg.Rules.WinnerElectionMode.valid() {
		report("winnerElectionMode %q is not a recognized mode", cfg.Rules.WinnerElectionMode)
	}

	if cfg.Rules.Scale < 1 || cfg.Rules.Scale > decimal.MaxScale {
		report("scale (decimalPlacesForVoteArithmetic) must be in [1, %d], got %d", decimal.MaxScale, cfg.Rules.Scale)
	}

	if cfg.Rules.NumberOfWinners < 1 {
		report("numberOfWinners must be >= 1, got %d", cfg.Rules.NumberOfWinners)
	}
	if cfg.Rules.WinnerElectionMode == SingleSeat && cfg.Rules.NumberOfWinners != 1 {
		report("numberOfWinners must be 1 for SINGLE_SEAT, got %d", cfg.Rules.NumberOfWinners)
	}
	if cfg.Rules.WinnerElectionMode == SingleSeatContinueUntilTwoRemain && cfg.Rules.NumberOfWinners != 1 {
		report("numberOfWinners must be 1 for SINGLE_SEAT_CONTINUE_UNTIL_TWO_CANDIDATES_REMAIN, got %d", cfg.Rules.NumberOfWinners)
	}
	if cfg.Rules.WinnerElectionMode.isMultiSeat() && cfg.Rules.NumberOfWinners == 1 {
		report("numberOfWinners must be > 1 for multi-seat mode %q", cfg.Rules.WinnerElectionMode)
	}

	if cfg.Rules.BatchElimination && cfg.Rules.NumberOfWinners > 1 {
		report("batchElimination is forbidden when numberOfWinners > 1")
	}
	if cfg.Rules.BatchElimination && cfg.Rules.WinnerElectionMode == MultiSeatBottomsUp {
		report("batchElimination is forbidden with MULTI_SEAT_BOTTOMS_UP")
	}
	if cfg.Rules.HareQuota && cfg.Rules.NumberOfWinners <= 1 {
		report("hareQuota is only valid when numberOfWinners > 1")
	}

	if cfg.Rules.MaxRankingsAllowed < 0 {
		report("maxRankingsAllowed must be >= 0 (0 means unlimited), got %d", cfg.Rules.MaxRankingsAllowed)
	}
	if cfg.Rules.MaxSkippedRanksAllowed != nil && *cfg.Rules.MaxSkippedRanksAllowed < 0 {
		report("maxSkippedRanksAllowed must be >= 0 when set, got %d", *cfg.Rules.MaxSkippedRanksAllowed)
	}

	if cfg.Rules.MinimumVoteThreshold < 0 || cfg.Rules.MinimumVoteThreshold > maxMinimumVoteThreshold {
		report("minimumVoteThreshold must be in [0, %d], got %d", maxMinimumVoteThreshold, cfg.Rules.MinimumVoteThreshold)
	}

	if cfg.Rules.TiebreakMode.usesRandomness() && !cfg.Rules.RandomSeedSet {
		report("tiebreakMode %q requires randomSeed to be explicitly set", cfg.Rules.TiebreakMode)
	}
	if (cfg.Rules.TiebreakMode == TiebreakInteractive || cfg.Rules.TiebreakMode == TiebreakPreviousRoundCountsThenInteractive) && cfg.Oracle == nil {
		report("tiebreakMode %q requires a TieBreakOracle", cfg.Rules.TiebreakMode)
	}

	if cfg.Rules.TreatBlankAsUndeclaredWriteIn && strings.TrimSpace(cfg.Rules.UndeclaredWriteInLabel) == "" {
		report("undeclaredWriteInLabel must be set when treatBlankAsUndeclaredWriteIn is true")
	}

	validateCandidates(cfg, report)
	validateCVRSources(cfg, report)
	validateReservedLabels(cfg, report)

	if len(violations) == 0 {
		return nil
	}
	return MessageErrorf(ErrConfigInvalid, "%d violation(s): %s", len(violations), strings.Join(violations, "; "))
}

func validateCandidates(cfg *Config, report func(string, ...any)) {
	if len(cfg.Candidates) == 0 {
		report("candidates list must not be empty")
		return
	}

	seen := make(map[string]bool, len(cfg.Candidates))
	seenCodes := make(map[string]bool, len(cfg.Candidates))
	anyCode := false
	missingCode := false
	activeCount := 0
	for _, c := range cfg.Candidates {
		if strings.TrimSpace(c.Name) == "" {
			report("candidate has an empty name")
			continue
		}
		if seen[c.Name] {
			report("duplicate candidate name %q", c.Name)
		}
		seen[c.Name] = true
		if !c.Excluded {
			activeCount++
		}

		if c.Code == "" {
			missingCode = true
			continue
		}
		anyCode = true
		if seenCodes[c.Code] {
			report("duplicate candidate code %q", c.Code)
		}
		seenCodes[c.Code] = true
	}
	if anyCode && missingCode {
		report("candidate code must be present on every candidate if any candidate has one")
	}

	if activeCount < cfg.Rules.NumberOfWinners {
		report("only %d non-excluded candidate(s) but numberOfWinners is %d", activeCount, cfg.Rules.NumberOfWinners)
	}
}

func validateCVRSources(cfg *Config, report func(string, ...any)) {
	if len(cfg.CVRSources) == 0 {
		report("cvrSources list must not be empty")
		return
	}

	cdfCount := 0
	for _, src := range cfg.CVRSources {
		if src.Provider == ProviderCDF {
			cdfCount++
		}
	}
	if cdfCount > 0 {
		if len(cfg.CVRSources) != 1 {
			report("a CDF cvrSource must be the only source, got %d sources", len(cfg.CVRSources))
		}
		if cfg.OutputSettings.TabulateByPrecinct {
			report("a CDF cvrSource is incompatible with outputSettings.tabulateByPrecinct")
		}
	}

	for i, src := range cfg.CVRSources {
		if strings.TrimSpace(src.FilePath) == "" {
			report("cvrSources[%d]: filePath must not be empty", i)
		}

		if src.Provider != ProviderCDF {
			if src.FirstVoteColumnIndex < minVoteColumnIndex || src.FirstVoteColumnIndex > maxVoteColumnIndex {
				report("cvrSources[%d]: firstVoteColumnIndex is required and must be in [%d, %d] for non-CDF sources, got %d",
					i, minVoteColumnIndex, maxVoteColumnIndex, src.FirstVoteColumnIndex)
			}
			if src.FirstVoteRowIndex < minVoteRowIndex || src.FirstVoteRowIndex > maxVoteRowIndex {
				report("cvrSources[%d]: firstVoteRowIndex is required and must be in [%d, %d] for non-CDF sources, got %d",
					i, minVoteRowIndex, maxVoteRowIndex, src.FirstVoteRowIndex)
			}
		}

		if src.IDColumnIndex != 0 && (src.IDColumnIndex < minVoteColumnIndex || src.IDColumnIndex > maxVoteColumnIndex) {
			report("cvrSources[%d]: idColumnIndex must be in [%d, %d] when set, got %d", i, minVoteColumnIndex, maxVoteColumnIndex, src.IDColumnIndex)
		}

		if cfg.OutputSettings.TabulateByPrecinct && src.PrecinctColumnIndex == 0 {
			report("cvrSources[%d]: precinctColumnIndex is required when outputSettings.tabulateByPrecinct is set", i)
		}
		if src.PrecinctColumnIndex != 0 && (src.PrecinctColumnIndex < minVoteColumnIndex || src.PrecinctColumnIndex > maxVoteColumnIndex) {
			report("cvrSources[%d]: precinctColumnIndex must be in [%d, %d] when set, got %d", i, minVoteColumnIndex, maxVoteColumnIndex, src.PrecinctColumnIndex)
		}
	}
}

// validateReservedLabels enforces spec §4.10/§6: the overvote, undervote,
// and UWI labels must be pairwise distinct and must not collide with any
// candidate's name or code.
func validateReservedLabels(cfg *Config, report func(string, ...any)) {
	type label struct {
		name  string
		value string
	}
	var labels []label
	if cfg.Rules.UndeclaredWriteInLabel != "" {
		labels = append(labels, label{"undeclaredWriteInLabel", cfg.Rules.UndeclaredWriteInLabel})
	}
	if cfg.Rules.OvervoteLabel != "" {
		labels = append(labels, label{"overvoteLabel", cfg.Rules.OvervoteLabel})
	}
	if cfg.Rules.UndervoteLabel != "" {
		labels = append(labels, label{"undervoteLabel", cfg.Rules.UndervoteLabel})
	}

	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			if labels[i].value == labels[j].value {
				report("%s and %s must be distinct, both are %q", labels[i].name, labels[j].name, labels[i].value)
			}
		}
	}

	for _, l := range labels {
		for _, c := range cfg.Candidates {
			if c.Name == l.value {
				report("%s %q collides with candidate name %q", l.name, l.value, c.Name)
			}
			if c.Code != "" && c.Code == l.value {
				report("%s %q collides with candidate code %q", l.name, l.value, c.Code)
			}
		}
	}
}
