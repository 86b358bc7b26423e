package rcv

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		TabulatorVersion: EngineVersion,
		CVRSources: []CVRSource{
			{FilePath: "cvr.csv", Provider: ProviderCDF, IDColumnIndex: 0, FirstVoteColumnIndex: 1, FirstVoteRowIndex: 1},
		},
		Candidates: []Candidate{
			{Name: "A"}, {Name: "B"}, {Name: "C"},
		},
		Rules: Rules{
			TiebreakMode:       TiebreakGeneratePermutation,
			OvervoteRule:       OvervoteExhaustImmediately,
			WinnerElectionMode: SingleSeat,
			NumberOfWinners:    1,
			Scale:              4,
			RandomSeed:         1,
			RandomSeedSet:      true,
		},
	}
}

func TestValidateConfigAccepts(t *testing.T) {
	if err := ValidateConfig(validConfig()); err != nil {
		t.Errorf("expected a valid config to pass, got: %v", err)
	}
}

func TestValidateConfigRejectsVersionMismatch(t *testing.T) {
	cfg := validConfig()
	cfg.TabulatorVersion = "1.0"
	assertViolation(t, cfg, "tabulatorVersion")
}

func TestValidateConfigRejectsUnknownEnums(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.TiebreakMode = "NOT_A_MODE"
	assertViolation(t, cfg, "tiebreakMode")
}

func TestValidateConfigRejectsMissingCandidates(t *testing.T) {
	cfg := validConfig()
	cfg.Candidates = nil
	assertViolation(t, cfg, "candidates")
}

func TestValidateConfigRejectsDuplicateCandidateNames(t *testing.T) {
	cfg := validConfig()
	cfg.Candidates = append(cfg.Candidates, Candidate{Name: "A"})
	assertViolation(t, cfg, "duplicate candidate")
}

func TestValidateConfigRejectsMissingCVRSources(t *testing.T) {
	cfg := validConfig()
	cfg.CVRSources = nil
	assertViolation(t, cfg, "cvrSources")
}

func TestValidateConfigRejectsRandomModeWithoutSeed(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.TiebreakMode = TiebreakRandom
	cfg.Rules.RandomSeedSet = false
	assertViolation(t, cfg, "randomSeed")
}

func TestValidateConfigRejectsInteractiveWithoutOracle(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.TiebreakMode = TiebreakInteractive
	cfg.Oracle = nil
	assertViolation(t, cfg, "TieBreakOracle")
}

func TestValidateConfigRejectsCDFSourceMixedWithOthers(t *testing.T) {
	cfg := validConfig()
	cfg.CVRSources = append(cfg.CVRSources, CVRSource{
		FilePath: "cvr2.csv", Provider: ProviderESS,
		FirstVoteColumnIndex: 1, FirstVoteRowIndex: 1,
	})
	assertViolation(t, cfg, "must be the only source")
}

func TestValidateConfigRejectsCDFSourceWithPerPrecinct(t *testing.T) {
	cfg := validConfig()
	cfg.OutputSettings.TabulateByPrecinct = true
	assertViolation(t, cfg, "incompatible with outputSettings.tabulateByPrecinct")
}

func TestValidateConfigRejectsNonCDFSourceMissingColumnRow(t *testing.T) {
	cfg := validConfig()
	cfg.CVRSources = []CVRSource{{FilePath: "cvr.csv", Provider: ProviderESS}}
	assertViolation(t, cfg, "firstVoteColumnIndex")
}

func TestValidateConfigRejectsColumnIndexOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.CVRSources = []CVRSource{{
		FilePath: "cvr.csv", Provider: ProviderESS,
		FirstVoteColumnIndex: 1001, FirstVoteRowIndex: 1,
	}}
	assertViolation(t, cfg, "firstVoteColumnIndex")
}

func TestValidateConfigRejectsRowIndexOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.CVRSources = []CVRSource{{
		FilePath: "cvr.csv", Provider: ProviderESS,
		FirstVoteColumnIndex: 1, FirstVoteRowIndex: 100001,
	}}
	assertViolation(t, cfg, "firstVoteRowIndex")
}

func TestValidateConfigRejectsPrecinctColumnIndexMissingWhenPerPrecinct(t *testing.T) {
	cfg := validConfig()
	cfg.CVRSources = []CVRSource{{
		FilePath: "cvr.csv", Provider: ProviderESS,
		FirstVoteColumnIndex: 1, FirstVoteRowIndex: 1,
	}}
	cfg.OutputSettings.TabulateByPrecinct = true
	assertViolation(t, cfg, "precinctColumnIndex is required")
}

func TestValidateConfigRejectsDuplicateCandidateCodes(t *testing.T) {
	cfg := validConfig()
	cfg.Candidates = []Candidate{
		{Name: "A", Code: "1"},
		{Name: "B", Code: "1"},
		{Name: "C", Code: "3"},
	}
	assertViolation(t, cfg, "duplicate candidate code")
}

func TestValidateConfigRejectsMissingCandidateCode(t *testing.T) {
	cfg := validConfig()
	cfg.Candidates = []Candidate{
		{Name: "A", Code: "1"},
		{Name: "B"},
		{Name: "C", Code: "3"},
	}
	assertViolation(t, cfg, "present on every candidate")
}

func TestValidateConfigRejectsReservedLabelCollision(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.OvervoteLabel = "overvote"
	cfg.Rules.UndervoteLabel = "overvote"
	assertViolation(t, cfg, "must be distinct")
}

func TestValidateConfigRejectsReservedLabelCollidingWithCandidateName(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.OvervoteLabel = "A"
	assertViolation(t, cfg, "collides with candidate name")
}

func TestValidateConfigRejectsReservedLabelCollidingWithCandidateCode(t *testing.T) {
	cfg := validConfig()
	cfg.Candidates = []Candidate{{Name: "A", Code: "X"}, {Name: "B", Code: "Y"}, {Name: "C", Code: "Z"}}
	cfg.Rules.UndeclaredWriteInLabel = "X"
	assertViolation(t, cfg, "collides with candidate code")
}

func TestValidateConfigRejectsScaleAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.Scale = 21
	assertViolation(t, cfg, "decimalPlacesForVoteArithmetic")
}

func TestValidateConfigRejectsMinimumVoteThresholdAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.MinimumVoteThreshold = 1000001
	assertViolation(t, cfg, "minimumVoteThreshold")
}

func TestValidateConfigRejectsBatchEliminationWithMultipleWinners(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.WinnerElectionMode = MultiSeatStandard
	cfg.Rules.NumberOfWinners = 2
	cfg.Rules.BatchElimination = true
	assertViolation(t, cfg, "batchElimination is forbidden when numberOfWinners > 1")
}

func TestValidateConfigRejectsMultiSeatModeWithOneWinner(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.WinnerElectionMode = MultiSeatStandard
	cfg.Rules.NumberOfWinners = 1
	assertViolation(t, cfg, "numberOfWinners must be > 1")
}

func TestValidateConfigRejectsHareQuotaWithOneWinner(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.HareQuota = true
	assertViolation(t, cfg, "hareQuota is only valid")
}

func TestValidateConfigRejectsBatchEliminationWithBottomsUp(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.WinnerElectionMode = MultiSeatBottomsUp
	cfg.Rules.NumberOfWinners = 2
	cfg.Rules.BatchElimination = true
	assertViolation(t, cfg, "batchElimination is forbidden with MULTI_SEAT_BOTTOMS_UP")
}

func TestValidateConfigCollectsMultipleViolations(t *testing.T) {
	cfg := validConfig()
	cfg.TabulatorVersion = "wrong"
	cfg.Candidates = nil
	cfg.CVRSources = nil

	err := ValidateConfig(cfg)
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	for _, want := range []string{"tabulatorVersion", "candidates", "cvrSources"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected combined error to mention %q, got: %s", want, msg)
		}
	}
}

func assertViolation(t *testing.T, cfg *Config, substr string) {
	t.Helper()
	err := ValidateConfig(cfg)
	if err == nil {
		t.Fatalf("expected a validation error mentioning %q", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error %q does not mention %q", err.Error(), substr)
	}
}
