package hinge

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hingebio/hinge/config"
)

// Strategy selects the combinatorial optimizer for a design run
type Strategy int

const (
	// StrategyHybrid lets the run pick: branch and bound for small
	// assemblies, greedy raced against annealing for larger ones
	StrategyHybrid Strategy = iota

	// StrategyGreedy takes the best non-colliding candidate per
	// region in one pass
	StrategyGreedy

	// StrategyBnb searches candidate assignments exhaustively with
	// pruning, exact over the truncated pools
	StrategyBnb

	// StrategyAnneal runs Metropolis annealing over region picks
	StrategyAnneal
)

// String returns the strategy's CLI name
func (s Strategy) String() string {
	switch s {
	case StrategyGreedy:
		return "greedy"
	case StrategyBnb:
		return "bnb"
	case StrategyAnneal:
		return "anneal"
	}
	return "hybrid"
}

// ParseStrategy reads a strategy from its CLI name
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hybrid":
		return StrategyHybrid, nil
	case "greedy":
		return StrategyGreedy, nil
	case "bnb", "branch-and-bound":
		return StrategyBnb, nil
	case "anneal", "mc", "monte-carlo":
		return StrategyAnneal, nil
	}
	return StrategyHybrid, fmt.Errorf("unknown strategy %s, want hybrid, greedy, bnb or anneal", name)
}

// placement pairs a region with the candidate chosen for it
type placement struct {
	r *region
	c *Candidate
}

// designer carries the immutable inputs every strategy works from:
// the regions with their scored pools, the fidelity model and the
// tuning in conf. Strategies are pure over these, the same designer
// and seed always produce the same solution
type designer struct {
	enz     Enzyme
	model   *fidelityModel
	scr     *scorer
	regions []*region
	conf    *config.Config
	rng     *rand.Rand
}

// run dispatches to the requested strategy
func (d *designer) run(strategy Strategy) *Solution {
	switch strategy {
	case StrategyGreedy:
		return d.greedy()
	case StrategyBnb:
		return d.branchAndBound()
	case StrategyAnneal:
		return d.anneal()
	}
	return d.hybrid()
}

// wobbleMatchMin resolves the flagging threshold, one under the
// overhang length unless configured
func (d *designer) wobbleMatchMin() int {
	if d.conf.WobbleMatchMin > 0 {
		return d.conf.WobbleMatchMin
	}
	return d.enz.OverhangLen - 1
}

// overhangsOf projects a path of placements onto its overhangs
func overhangsOf(path []placement) []string {
	set := make([]string, len(path))
	for i, p := range path {
		set[i] = p.c.Overhang
	}
	return set
}

// solutionFrom assembles the aggregate quality record over the chosen
// placements. Per junction fidelity is computed against the final set,
// so adding a junction can lower its neighbors' numbers
func (d *designer) solutionFrom(strategy Strategy, path []placement, diags []*RegionDiagnostic, stats *Stats) *Solution {
	set := overhangsOf(path)

	sol := &Solution{
		Strategy:    strategy.String(),
		Junctions:   make([]*Junction, len(path)),
		Complete:    len(path) == len(d.regions),
		Fidelity:    1,
		Efficiency:  1,
		Risks:       wobbleRisks(set, d.wobbleMatchMin(), d.conf.WobbleWeight),
		Diagnostics: diags,
		Stats:       stats,
	}

	var primerSum float64
	primerJunctions := 0
	var positionSum, compositeSum float64

	for i, p := range path {
		fidelity := d.model.junctionFidelity(p.c.Overhang, set)
		efficiency := d.model.efficiency(p.c.Overhang)

		sol.Junctions[i] = &Junction{
			Start:      p.c.Start,
			Overhang:   p.c.Overhang,
			RevComp:    p.c.RevComp,
			Fidelity:   fidelity,
			Efficiency: efficiency,
			Score:      p.c.Score,
		}

		sol.Fidelity *= fidelity
		sol.Efficiency *= efficiency
		compositeSum += p.c.Score.Composite

		if d.scr.oracle != nil {
			primerSum += (p.c.Score.Upstream + p.c.Score.Downstream) / 2
			primerJunctions++
		}

		offset := absInt(p.c.Start - p.r.ideal)
		positionSum += 100 * (1 - min(float64(offset)/float64(d.conf.RegionRadius), 1))
	}

	if len(path) > 0 {
		sol.Composite = compositeSum / float64(len(path))
		sol.PositionQuality = positionSum / float64(len(path))
	} else {
		sol.Fidelity = 0
		sol.Efficiency = 0
	}
	if primerJunctions > 0 {
		sol.PrimerQuality = primerSum / float64(primerJunctions)
	}

	return sol
}

// diagnose records why a region went unfilled
func diagnose(r *region, reason string) *RegionDiagnostic {
	return &RegionDiagnostic{
		Region: r.index,
		Ideal:  r.ideal,
		Reason: reason,
	}
}

// collides reports whether an overhang or its complement is already
// claimed. Both strands of every junction end up in the pot, so a
// chosen overhang bars its reverse complement everywhere else
func collides(used map[string]bool, c *Candidate) bool {
	return used[c.Overhang] || used[c.RevComp]
}

// claim marks both strands of a chosen overhang as taken
func claim(used map[string]bool, c *Candidate) {
	used[c.Overhang] = true
	used[c.RevComp] = true
}

// release frees both strands, the undo of claim
func release(used map[string]bool, c *Candidate) {
	delete(used, c.Overhang)
	delete(used, c.RevComp)
}
