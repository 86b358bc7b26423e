// Command rcvtab runs a ranked-choice-voting tabulation against a
// contest configuration and one or more CVR exports, and reports the
// result as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rcv-tab/rcv-tabulator/internal/log"
	"github.com/rcv-tab/rcv-tabulator/rcv"
)

type cli struct {
	Config     string `help:"Path to the contest configuration JSON file." required:"" type:"existingfile"`
	CVR        string `help:"Path to a JSON file containing the decoded CVR list." required:"" type:"existingfile"`
	Out        string `help:"Path to write the JSON result to. Defaults to stdout." optional:""`
	LogLevel   string `help:"Log level: debug, info, warn, error." default:"info"`
	MetricsAddr string `help:"If set, serve Prometheus metrics on this address (e.g. :9090) for the duration of the run." optional:""`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("rcvtab"),
		kong.Description("Run a ranked-choice-voting tabulation."),
	)

	log.SetLevel(c.LogLevel)

	if err := run(c); err != nil {
		log.Error("rcvtab: %v", err)
		os.Exit(1)
	}
}

func run(c cli) error {
	if c.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(c.MetricsAddr, mux); err != nil {
				log.Warn("metrics server stopped: %v", err)
			}
		}()
	}

	cfg, err := loadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cvrs, err := loadCVRs(c.CVR)
	if err != nil {
		return fmt.Errorf("loading CVRs: %w", err)
	}

	result, err := rcv.Tabulate(cfg, cvrs)
	if err != nil {
		return fmt.Errorf("tabulating: %w", err)
	}

	return writeResult(c.Out, result)
}

func loadConfig(path string) (*rcv.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg rcv.Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &cfg, nil
}

// cvrRecord is the on-disk shape of one CVR entry; rcv.NewCVR builds
// the in-memory CVR (with its FTV and UUID bookkeeping) from it.
type cvrRecord struct {
	SourceFile string             `json:"sourceFile"`
	RecordID   string             `json:"recordId"`
	RawRow     []string           `json:"rawRow"`
	Rankings   map[string][]string `json:"rankings"`
	Precinct   string             `json:"precinct"`
}

func loadCVRs(path string) ([]*rcv.CVR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []cvrRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	cvrs := make([]*rcv.CVR, 0, len(records))
	for _, rec := range records {
		rankings := make(rcv.Ranking, len(rec.Rankings))
		for rankStr, candidates := range rec.Rankings {
			var rank int
			if _, err := fmt.Sscanf(rankStr, "%d", &rank); err != nil {
				return nil, fmt.Errorf("%s: record %s: invalid rank key %q", path, rec.RecordID, rankStr)
			}
			ids := make([]rcv.CandidateID, len(candidates))
			for i, cand := range candidates {
				ids[i] = rcv.CandidateID(cand)
			}
			rankings[rank] = ids
		}
		cvrs = append(cvrs, rcv.NewCVR(rec.SourceFile, rec.RecordID, rec.RawRow, rankings, rec.Precinct))
	}
	return cvrs, nil
}

func writeResult(path string, result *rcv.Result) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
