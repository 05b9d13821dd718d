package hinge

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/hingebio/hinge/config"
)

// testTarget builds a deterministic pseudo random target sequence
func testTarget(n int) string {
	bases := []byte("ACGT")
	rng := rand.New(rand.NewSource(42))

	seq := make([]byte, n)
	for i := range seq {
		seq[i] = bases[rng.Intn(4)]
	}
	return string(seq)
}

func TestDesign(t *testing.T) {
	conf := config.New()

	sol, err := Design(Request{
		Seq:       testTarget(1000),
		Fragments: 3,
		Enzyme:    "BsaI",
		Strategy:  StrategyGreedy,
	}, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	if !sol.Complete || len(sol.Junctions) != 2 {
		t.Fatalf("Design() complete = %v with %d junctions, want 2 of 2", sol.Complete, len(sol.Junctions))
	}
	if sol.Infeasible != nil {
		t.Fatalf("Design() infeasible: %+v", sol.Infeasible)
	}

	used := map[string]bool{}
	last := -1
	for i, j := range sol.Junctions {
		ideal := 1000 * (i + 1) / 3
		if j.Start < ideal-conf.RegionRadius || j.Start >= ideal+conf.RegionRadius {
			t.Errorf("Design() junction %d at %d, want within %d of %d", i, j.Start, conf.RegionRadius, ideal)
		}
		if j.Start <= last {
			t.Errorf("Design() junction %d at %d is out of order", i, j.Start)
		}
		last = j.Start

		if len(j.Overhang) != 4 || !validBases(j.Overhang) || isPalindrome(j.Overhang) {
			t.Errorf("Design() junction %d overhang %s is not a viable 4-mer", i, j.Overhang)
		}
		if j.RevComp != revComp(j.Overhang) {
			t.Errorf("Design() junction %d revComp = %s, want %s", i, j.RevComp, revComp(j.Overhang))
		}
		if used[j.Overhang] || used[j.RevComp] {
			t.Errorf("Design() junction %d overhang %s collides within the set", i, j.Overhang)
		}
		used[j.Overhang] = true
		used[j.RevComp] = true

		if j.Fidelity <= 0 || j.Fidelity > 1 {
			t.Errorf("Design() junction %d fidelity = %v", i, j.Fidelity)
		}
		if j.Score == nil || !j.Score.Valid {
			t.Errorf("Design() junction %d has no score", i)
		}
	}

	if sol.Fidelity <= 0 || sol.Fidelity > 1 {
		t.Errorf("Design() set fidelity = %v", sol.Fidelity)
	}
	if sol.Composite <= 0 {
		t.Errorf("Design() composite = %v", sol.Composite)
	}
	if sol.PrimerQuality != 0 {
		t.Errorf("Design() primer quality = %v without an oracle", sol.PrimerQuality)
	}
}

func TestDesign_errors(t *testing.T) {
	conf := config.New()
	seq := testTarget(400)

	tests := []struct {
		name string
		req  Request
	}{
		{
			"no sequence",
			Request{Fragments: 2, Enzyme: "BsaI"},
		},
		{
			"unknown enzyme",
			Request{Seq: seq, Fragments: 2, Enzyme: "EcoRI"},
		},
		{
			"coding start off the target",
			Request{Seq: seq, Fragments: 2, Enzyme: "BsaI", CodingStart: 401},
		},
		{
			"inverted range",
			Request{Seq: seq, Fragments: 2, Enzyme: "BsaI", Forbidden: []Range{{Start: 50, End: 50}}},
		},
		{
			"range off the target",
			Request{Seq: seq, Fragments: 2, Enzyme: "BsaI", Allowed: []Range{{Start: 0, End: 500}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Design(tt.req, conf); err == nil {
				t.Error("Design() expected an error")
			}
		})
	}

	bad := config.New()
	bad.RegionRadius = 0
	if _, err := Design(Request{Seq: seq, Fragments: 2, Enzyme: "BsaI"}, bad); err == nil {
		t.Error("Design() accepted a malformed config")
	}
}

func TestDesign_infeasible(t *testing.T) {
	sol, err := Design(Request{
		Seq:       testTarget(300),
		Fragments: 5,
		Enzyme:    "BsaI",
	}, config.New())
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	if sol.Complete || len(sol.Junctions) != 0 {
		t.Errorf("Design() infeasible run still placed junctions: %+v", sol.Junctions)
	}
	if sol.Infeasible == nil {
		t.Fatal("Design() expected an infeasibility")
	}
	if sol.Infeasible.SuggestedFragments != 3 {
		t.Errorf("Design() suggested fragments = %d, want 3", sol.Infeasible.SuggestedFragments)
	}
}

func TestDesign_deterministic(t *testing.T) {
	conf := config.New()
	req := Request{
		Seq:       testTarget(900),
		Fragments: 4,
		Enzyme:    "BsaI",
		Strategy:  StrategyAnneal,
	}

	first, err := Design(req, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}
	second, err := Design(req, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Design() with the same seed produced different solutions")
	}
}

func TestDesign_bnbMatchesOrBeatsGreedy(t *testing.T) {
	conf := config.New()
	seq := testTarget(700)

	greedy, err := Design(Request{Seq: seq, Fragments: 3, Enzyme: "BsaI", Strategy: StrategyGreedy}, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}
	bnb, err := Design(Request{Seq: seq, Fragments: 3, Enzyme: "BsaI", Strategy: StrategyBnb}, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	if !greedy.Complete {
		t.Fatal("greedy left a region unfilled on this target")
	}
	if !bnb.Complete {
		t.Fatal("Design() bnb incomplete where greedy completed")
	}
	if bnb.Composite < greedy.Composite-1e-9 {
		t.Errorf("Design() bnb composite %v under greedy's %v", bnb.Composite, greedy.Composite)
	}
}

func TestDesign_forbidden(t *testing.T) {
	// the forbidden span blankets the second region's whole window
	sol, err := Design(Request{
		Seq:       testTarget(600),
		Fragments: 3,
		Enzyme:    "BsaI",
		Strategy:  StrategyGreedy,
		Forbidden: []Range{{Start: 350, End: 450}},
	}, config.New())
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	if sol.Complete {
		t.Error("Design() claims completeness with a region forbidden away")
	}
	for _, j := range sol.Junctions {
		if j.Start < 450 && j.Start+4 > 350 {
			t.Errorf("Design() junction at %d overlaps the forbidden span", j.Start)
		}
	}

	found := false
	for _, d := range sol.Diagnostics {
		if d.Region == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("Design() diagnostics = %+v, want the starved region named", sol.Diagnostics)
	}
}

func TestDesign_allowed(t *testing.T) {
	sol, err := Design(Request{
		Seq:       testTarget(600),
		Fragments: 3,
		Enzyme:    "BsaI",
		Strategy:  StrategyGreedy,
		Allowed:   []Range{{Start: 150, End: 250}},
	}, config.New())
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	if len(sol.Junctions) == 0 {
		t.Fatal("Design() placed nothing inside the allowed window")
	}
	for _, j := range sol.Junctions {
		if j.Start < 150 || j.Start+4 > 250 {
			t.Errorf("Design() junction at %d escapes the allowed window", j.Start)
		}
	}
}

func TestDesign_codingContext(t *testing.T) {
	conf := config.New()
	seq := testTarget(600)

	noncoding, err := Design(Request{Seq: seq, Fragments: 3, Enzyme: "BsaI", Strategy: StrategyGreedy}, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}
	coding, err := Design(Request{Seq: seq, Fragments: 3, Enzyme: "BsaI", Strategy: StrategyGreedy, CodingStart: 1}, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	for _, j := range noncoding.Junctions {
		if j.Score.Context != 0 {
			t.Errorf("Design() noncoding junction scored context %v", j.Score.Context)
		}
	}
	for _, j := range coding.Junctions {
		if j.Score.Context == 0 {
			t.Error("Design() coding junction skipped the context sub-score")
		}
	}
}

func TestDesign_domains(t *testing.T) {
	sol, err := Design(Request{
		Seq:       testTarget(600),
		Fragments: 3,
		Enzyme:    "BsaI",
		Strategy:  StrategyGreedy,
		Domains:   []Range{{Start: 180, End: 220}},
	}, config.New())
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	// domains activate context scoring, they penalize rather than
	// exclude
	for _, j := range sol.Junctions {
		if j.Score.Context == 0 {
			t.Error("Design() domain run skipped the context sub-score")
		}
	}
}

func TestDesign_staticFallbackEnzyme(t *testing.T) {
	// SapI leaves 3 base overhangs and ships no measured profile
	sol, err := Design(Request{
		Seq:       testTarget(600),
		Fragments: 3,
		Enzyme:    "SapI",
		Strategy:  StrategyGreedy,
	}, config.New())
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	if len(sol.Junctions) == 0 {
		t.Fatal("Design() placed no junctions")
	}
	for _, j := range sol.Junctions {
		if len(j.Overhang) != 3 {
			t.Errorf("Design() SapI overhang = %s, want 3 bases", j.Overhang)
		}
		if j.Fidelity <= 0 || j.Fidelity > 1 {
			t.Errorf("Design() SapI fidelity = %v", j.Fidelity)
		}
	}
}

func TestDesign_hybridStrategies(t *testing.T) {
	conf := config.New()
	seq := testTarget(900)

	small, err := Design(Request{Seq: seq, Fragments: 4, Enzyme: "BsaI"}, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}
	raced := map[string]bool{small.Strategy: true}
	for _, alt := range small.Alternatives {
		raced[alt.Strategy] = true
	}
	if len(small.Alternatives) != 2 || !raced["greedy"] || !raced["bnb"] || !raced["anneal"] {
		t.Errorf("Design() hybrid raced %d alternatives over %v, want all three optimizers",
			len(small.Alternatives), raced)
	}
	for _, alt := range small.Alternatives {
		if alt.Complete == small.Complete && len(alt.Junctions) == len(small.Junctions) &&
			alt.Composite > small.Composite+1e-9 {
			t.Errorf("Design() hybrid kept %s at %v over %s at %v",
				small.Strategy, small.Composite, alt.Strategy, alt.Composite)
		}
	}

	conf.BnbMaxFragments = 3
	large, err := Design(Request{Seq: seq, Fragments: 4, Enzyme: "BsaI"}, conf)
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}
	if large.Strategy != "greedy" && large.Strategy != "anneal" {
		t.Errorf("Design() hybrid strategy = %s, want a race winner", large.Strategy)
	}
	if len(large.Alternatives) != 1 {
		t.Fatalf("Design() hybrid alternatives = %d, want the race loser alone", len(large.Alternatives))
	}
	if large.Alternatives[0].Strategy == "bnb" {
		t.Error("Design() hybrid ran branch and bound over the fragment ceiling")
	}
}

func TestScanCandidates(t *testing.T) {
	conf := config.New()
	seq := testTarget(400)

	candidates, err := ScanCandidates(seq, "BsaI", &stubOracle{prof: perfectProfile}, conf)
	if err != nil {
		t.Fatalf("ScanCandidates() error = %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("ScanCandidates() found nothing")
	}

	last := -1
	for _, c := range candidates {
		if c.Start <= last {
			t.Errorf("ScanCandidates() start %d out of order", c.Start)
		}
		last = c.Start

		if c.Start < conf.ScanMinFromEnds || c.Start+4 > 400-conf.ScanMinFromEnds {
			t.Errorf("ScanCandidates() start %d out of bounds", c.Start)
		}
		if c.Score == nil || !c.Score.Valid {
			t.Fatalf("ScanCandidates() left %s at %d unscored", c.Overhang, c.Start)
		}
		if c.Score.Upstream != 100 || c.Score.Downstream != 100 {
			t.Errorf("ScanCandidates() at %d primer sub-scores = %v/%v, want 100s from the canned oracle",
				c.Start, c.Score.Upstream, c.Score.Downstream)
		}
	}

	if _, err := ScanCandidates("", "BsaI", nil, conf); err == nil {
		t.Error("ScanCandidates() accepted an empty target")
	}
	if _, err := ScanCandidates(seq, "EcoRI", nil, conf); err == nil {
		t.Error("ScanCandidates() accepted an unknown enzyme")
	}
}

func TestSolution_Overhangs(t *testing.T) {
	sol := &Solution{Junctions: []*Junction{
		{Overhang: "AACG"},
		{Overhang: "TGCC"},
	}}
	if got := sol.Overhangs(); !reflect.DeepEqual(got, []string{"AACG", "TGCC"}) {
		t.Errorf("Solution.Overhangs() = %v", got)
	}

	if got := (&Solution{}).Overhangs(); len(got) != 0 {
		t.Errorf("Solution.Overhangs() of an empty solution = %v", got)
	}
}
