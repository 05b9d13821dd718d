// Package hinge is for choosing Golden Gate junction sites and the
// overhang sets that ligate them back together with high fidelity.
package hinge

import (
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"sync"

	"github.com/hingebio/hinge/config"
)

// Request bundles the inputs of one junction design run
type Request struct {
	// Seq is the target sequence, case insensitive
	Seq string

	// Fragments is how many pieces the target should split into
	Fragments int

	// Enzyme is the Type IIS enzyme's name, see EnzymeNames
	Enzyme string

	// Strategy picks the optimizer, StrategyHybrid when unset
	Strategy Strategy

	// CodingStart is the 1-based position where the reading frame
	// opens, 0 for a noncoding target
	CodingStart int

	// Domains are spans junctions should stay out of, scored against
	// rather than excluded
	Domains []Range

	// Allowed restricts junctions to these windows when non-empty
	Allowed []Range

	// Forbidden excludes junctions from these spans outright
	Forbidden []Range

	// Oracle profiles primer windows for the composite score. Nil
	// leaves primer quality out of the composite
	Oracle PrimerOracle

	// Rand drives the stochastic strategies. Nil builds one from the
	// configured seed, so runs stay reproducible by default
	Rand *rand.Rand
}

// rng returns the request's random source, seeded from conf when the
// caller didn't inject one
func (req *Request) rng(conf *config.Config) *rand.Rand {
	if req.Rand != nil {
		return req.Rand
	}
	seed := conf.Seed
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Design splits a target sequence into fragments joined at selected
// Golden Gate junctions. Errors are reserved for malformed requests.
// A target the optimizer can't fully satisfy still returns a
// Solution, with Complete false and the trouble spelled out in
// Diagnostics or Infeasible
func Design(req Request, conf *config.Config) (*Solution, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	seq := strings.ToUpper(strings.TrimSpace(req.Seq))
	if seq == "" {
		return nil, fmt.Errorf("no target sequence")
	}

	enz, err := GetEnzyme(req.Enzyme)
	if err != nil {
		return nil, err
	}

	profile, err := ligationProfile(enz)
	if err != nil {
		return nil, err
	}

	if req.CodingStart < 0 || req.CodingStart > len(seq) {
		return nil, fmt.Errorf("coding start %d is outside the %dbp target", req.CodingStart, len(seq))
	}
	for _, ranges := range [][]Range{req.Domains, req.Allowed, req.Forbidden} {
		for _, r := range ranges {
			if r.Start < 0 || r.End > len(seq) || r.Start >= r.End {
				return nil, fmt.Errorf("malformed range %d..%d over a %dbp target", r.Start, r.End, len(seq))
			}
		}
	}

	regions, infeasible := newRegions(len(seq), req.Fragments, conf)
	if infeasible != nil {
		return &Solution{Strategy: req.Strategy.String(), Infeasible: infeasible}, nil
	}

	model := newFidelityModel(profile, conf)
	scr := &scorer{
		seq:         seq,
		enz:         enz,
		model:       model,
		oracle:      req.Oracle,
		conf:        conf,
		codingStart: req.CodingStart - 1,
		domains:     req.Domains,
	}

	candidates := scanCandidates(seq, enz, model, req.Allowed, req.Forbidden, conf)
	fillRegions(regions, candidates, scr, conf)

	d := &designer{
		enz:     enz,
		model:   model,
		scr:     scr,
		regions: regions,
		conf:    conf,
		rng:     req.rng(conf),
	}
	return d.run(req.Strategy), nil
}

// ScanCandidates walks a target and returns every viable junction
// candidate with its full composite score, position ascending. The
// scan behind the `hinge scan` command
func ScanCandidates(seq, enzymeName string, oracle PrimerOracle, conf *config.Config) ([]*Candidate, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	seq = strings.ToUpper(strings.TrimSpace(seq))
	if seq == "" {
		return nil, fmt.Errorf("no target sequence")
	}

	enz, err := GetEnzyme(enzymeName)
	if err != nil {
		return nil, err
	}

	profile, err := ligationProfile(enz)
	if err != nil {
		return nil, err
	}

	model := newFidelityModel(profile, conf)
	scr := &scorer{
		seq:         seq,
		enz:         enz,
		model:       model,
		oracle:      oracle,
		conf:        conf,
		codingStart: -1,
	}

	candidates := scanCandidates(seq, enz, model, nil, nil, conf)
	scoreAll(candidates, scr)
	return candidates, nil
}

// scoreAll attaches full composite scores to a candidate list,
// fanning the oracle calls out over the CPUs
func scoreAll(candidates []*Candidate, scr *scorer) {
	workers := min(runtime.GOMAXPROCS(0), len(candidates))
	if workers < 2 {
		for _, c := range candidates {
			c.Score = scr.score(c)
		}
		return
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(candidates); i += workers {
				candidates[i].Score = scr.score(candidates[i])
			}
		}(w)
	}
	wg.Wait()
}
