package hinge

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func Test_writeJSON(t *testing.T) {
	out := filepath.Join("..", "..", "test", "output", "egfp.output.json")
	os.MkdirAll(filepath.Dir(out), 0755)

	sol := &Solution{
		Strategy:   "greedy",
		Complete:   true,
		Fidelity:   0.94,
		Efficiency: 0.88,
		Composite:  86.5,
		Junctions: []*Junction{
			{
				Start:      142,
				Overhang:   "AACG",
				RevComp:    "CGTT",
				Fidelity:   0.97,
				Efficiency: 0.95,
				Score:      &Score{Composite: 88.1, Overhang: 91.0, Valid: true},
			},
			{
				Start:      301,
				Overhang:   "TGCC",
				RevComp:    "GGCA",
				Fidelity:   0.97,
				Efficiency: 0.93,
				Score:      &Score{Composite: 84.9, Overhang: 89.2, Valid: true},
			},
		},
	}

	output, err := writeJSON(out, "egfp_CDS", "BsaI", 3, 1.2, sol)
	if err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	dat, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read the output file: %v", err)
	}
	if !bytes.Equal(dat, output) {
		t.Error("writeJSON() file contents differ from the returned bytes")
	}

	parsed := &Output{}
	if err := json.Unmarshal(dat, parsed); err != nil {
		t.Fatalf("failed to parse the output file: %v", err)
	}

	if parsed.Target != "egfp_CDS" {
		t.Errorf("output target = %s, want egfp_CDS", parsed.Target)
	}
	if parsed.Enzyme != "BsaI" {
		t.Errorf("output enzyme = %s, want BsaI", parsed.Enzyme)
	}
	if parsed.Fragments != 3 {
		t.Errorf("output fragments = %d, want 3", parsed.Fragments)
	}
	if parsed.Time == "" {
		t.Error("output time is empty")
	}
	if parsed.Solution == nil {
		t.Fatal("output solution is nil")
	}
	if len(parsed.Solution.Junctions) != 2 {
		t.Errorf("output junctions = %d, want 2", len(parsed.Solution.Junctions))
	}
	if parsed.Solution.Junctions[0].Overhang != "AACG" {
		t.Errorf("output overhang = %s, want AACG", parsed.Solution.Junctions[0].Overhang)
	}
	if !parsed.Solution.Complete {
		t.Error("output solution incomplete, want complete")
	}
}

func Test_writeJSON_stdout(t *testing.T) {
	sol := &Solution{
		Strategy: "anneal",
		Complete: true,
		Junctions: []*Junction{
			{Start: -1, Overhang: "AACG", RevComp: "CGTT", Fidelity: 0.96, Efficiency: 0.95},
		},
	}

	// "-" logs to stdout, no file is written
	output, err := writeJSON("-", "pool", "BsaI", 0, 0.4, sol)
	if err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	parsed := &Output{}
	if err := json.Unmarshal(output, parsed); err != nil {
		t.Fatalf("failed to parse the returned bytes: %v", err)
	}
	if parsed.Target != "pool" {
		t.Errorf("output target = %s, want pool", parsed.Target)
	}
	if parsed.Fragments != 0 {
		t.Errorf("output fragments = %d, want 0", parsed.Fragments)
	}
}

func Test_printSolution(t *testing.T) {
	sol := &Solution{
		Strategy: "anneal",
		Complete: false,
		Junctions: []*Junction{
			{Start: 142, Overhang: "AACG", RevComp: "CGTT", Fidelity: 0.97, Efficiency: 0.95, Score: &Score{Composite: 88.1, Valid: true}},
			{Start: -1, Overhang: "TGCC", RevComp: "GGCA", Fidelity: 0.96, Efficiency: 0.93},
		},
		Risks: []*WobbleRisk{
			{First: "CGTT", Second: "GGCA", Matches: 3, Wobbles: 2, Tier: "high", Freq: 0.04},
		},
		Diagnostics: []*RegionDiagnostic{
			{Region: 1, Ideal: 200, Reason: "no viable candidates in the region window"},
		},
		Infeasible: &Infeasibility{Reason: "5 picks asked of 2 viable overhangs", SuggestedFragments: 2},
		Stats:      &Stats{Proposed: 2000, Accepted: 740, InitialTemp: 1.8},
	}

	printSolution(sol)
	printStats(sol)
}

func Test_printCandidates(t *testing.T) {
	candidates := []*Candidate{
		{
			Start:    44,
			Overhang: "AACG",
			RevComp:  "CGTT",
			Score:    &Score{Composite: 88.1, Overhang: 91.0, Risk: 100, Notes: []string{"junction carries a BsaI site"}, Valid: true},
		},
		{Start: 60, Overhang: "TGCC", RevComp: "GGCA"}, // unscored, skipped
	}

	printCandidates(candidates)
}
