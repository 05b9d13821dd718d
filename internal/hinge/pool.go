package hinge

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/hingebio/hinge/config"
)

// DesignPool selects count mutually compatible overhangs out of a flat
// pool, no target sequence involved. The pool is cleaned first:
// ambiguous, wrong length, palindromic, duplicate and reverse
// complement duplicate overhangs drop with a diagnostic each.
// Selection anneals toward the highest fidelity set, with the start
// temperature calibrated against the pool's own score scale rather
// than assumed
func DesignPool(pool []string, count int, enzymeName string, rng *rand.Rand, conf *config.Config) (*Solution, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("cannot pick %d overhangs", count)
	}

	enz, err := GetEnzyme(enzymeName)
	if err != nil {
		return nil, err
	}

	profile, err := ligationProfile(enz)
	if err != nil {
		return nil, err
	}

	var diags []*RegionDiagnostic
	seen := map[string]bool{}
	var overhangs []string
	for _, raw := range pool {
		o := strings.ToUpper(strings.TrimSpace(raw))
		switch {
		case o == "":
		case len(o) != enz.OverhangLen:
			diags = append(diags, poolDiag(fmt.Sprintf("%s is %dbp, %s leaves %dbp overhangs", o, len(o), enz.Name, enz.OverhangLen)))
		case !validBases(o):
			diags = append(diags, poolDiag(fmt.Sprintf("%s has ambiguous bases", o)))
		case isPalindrome(o):
			diags = append(diags, poolDiag(fmt.Sprintf("%s is palindromic and ligates to itself", o)))
		case seen[o]:
			diags = append(diags, poolDiag(fmt.Sprintf("%s appears more than once", o)))
		case seen[revComp(o)]:
			diags = append(diags, poolDiag(fmt.Sprintf("%s is the reverse complement of an earlier overhang", o)))
		default:
			seen[o] = true
			overhangs = append(overhangs, o)
		}
	}

	if len(overhangs) < count {
		return &Solution{
			Strategy:    StrategyAnneal.String(),
			Diagnostics: diags,
			Infeasible: &Infeasibility{
				Reason:             fmt.Sprintf("%d picks asked of %d viable overhangs", count, len(overhangs)),
				SuggestedFragments: len(overhangs),
			},
		}, nil
	}

	model := newFidelityModel(profile, conf)
	scr := &scorer{enz: enz, model: model, conf: conf, codingStart: -1}

	candidates := make([]*Candidate, len(overhangs))
	for i, o := range overhangs {
		candidates[i] = poolCandidate(o)
		candidates[i].Score = scr.score(candidates[i])
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score.Composite != candidates[j].Score.Composite {
			return candidates[i].Score.Composite > candidates[j].Score.Composite
		}
		return candidates[i].Overhang < candidates[j].Overhang
	})

	if rng == nil {
		seed := conf.Seed
		if seed == 0 {
			seed = 1
		}
		rng = rand.New(rand.NewSource(seed))
	}

	p := &poolDesigner{
		hangLen:    enz.OverhangLen,
		model:      model,
		candidates: candidates,
		count:      count,
		rng:        rng,
		conf:       conf,
	}

	sol := p.anneal()
	sol.Diagnostics = append(diags, sol.Diagnostics...)
	return sol, nil
}

// poolDiag is a diagnostic about the pool itself rather than a target
// region, marked with region -1
func poolDiag(reason string) *RegionDiagnostic {
	return &RegionDiagnostic{Region: -1, Reason: reason}
}

// poolDesigner anneals a pick of count overhangs out of a cleaned,
// composite-sorted pool
type poolDesigner struct {
	hangLen    int
	model      *fidelityModel
	candidates []*Candidate
	count      int
	rng        *rand.Rand
	conf       *config.Config
}

// setScore is the pool objective: the picked set's ligation fidelity
// scaled by its mean efficiency
func (p *poolDesigner) setScore(picked []int) float64 {
	set := make([]string, len(picked))
	effSum := 0.0
	for i, idx := range picked {
		set[i] = p.candidates[idx].Overhang
		effSum += p.model.efficiency(set[i])
	}
	return p.model.setFidelity(set) * (effSum / float64(len(picked)))
}

// anneal walks the pick through Metropolis swaps between chosen and
// unchosen overhangs. The pool was cleaned of reverse complement
// clashes, so every subset is collision free and no proposal needs a
// collision check
func (p *poolDesigner) anneal() *Solution {
	picked := make([]int, p.count)
	unpicked := make([]int, len(p.candidates)-p.count)
	for i := range p.candidates {
		if i < p.count {
			picked[i] = i
		} else {
			unpicked[i-p.count] = i
		}
	}

	cur := p.setScore(picked)

	// trial proposals sample the worsening deltas, every move undone
	var deltas []float64
	trials := min(200, p.conf.AnnealSteps)
	for i := 0; i < trials && len(unpicked) > 0; i++ {
		a := p.rng.Intn(len(picked))
		b := p.rng.Intn(len(unpicked))
		picked[a], unpicked[b] = unpicked[b], picked[a]
		if delta := p.setScore(picked) - cur; delta < 0 {
			deltas = append(deltas, delta)
		}
		picked[a], unpicked[b] = unpicked[b], picked[a]
	}
	temp := calibrateTemperature(deltas, p.conf.AnnealTargetAccept, p.conf.AnnealStartTemp)
	stats := &Stats{InitialTemp: temp}

	best := append([]int(nil), picked...)
	bestScore := cur
	stats.bestTrace = append(stats.bestTrace, bestScore)

	for i := 0; i < p.conf.AnnealSteps && len(unpicked) > 0; i++ {
		a := p.rng.Intn(len(picked))
		b := p.rng.Intn(len(unpicked))
		picked[a], unpicked[b] = unpicked[b], picked[a]
		stats.Proposed++

		next := p.setScore(picked)
		delta := next - cur
		if delta >= 0 || p.rng.Float64() < math.Exp(delta/temp) {
			stats.Accepted++
			cur = next
			if cur > bestScore {
				bestScore = cur
				best = append([]int(nil), picked...)
				stats.bestTrace = append(stats.bestTrace, bestScore)
			}
		} else {
			picked[a], unpicked[b] = unpicked[b], picked[a]
		}
		temp *= p.conf.AnnealCooling
	}

	return p.solution(best, stats)
}

// solution builds the aggregate record over the picked overhangs,
// best composite first
func (p *poolDesigner) solution(picked []int, stats *Stats) *Solution {
	sort.Ints(picked)

	set := make([]string, len(picked))
	for i, idx := range picked {
		set[i] = p.candidates[idx].Overhang
	}

	matchMin := p.conf.WobbleMatchMin
	if matchMin <= 0 {
		matchMin = p.hangLen - 1
	}

	sol := &Solution{
		Strategy:   StrategyAnneal.String(),
		Junctions:  make([]*Junction, len(picked)),
		Complete:   len(picked) == p.count,
		Fidelity:   1,
		Efficiency: 1,
		Risks:      wobbleRisks(set, matchMin, p.conf.WobbleWeight),
		Stats:      stats,
	}

	compositeSum := 0.0
	for i, idx := range picked {
		c := p.candidates[idx]
		fidelity := p.model.junctionFidelity(c.Overhang, set)

		sol.Junctions[i] = &Junction{
			Start:      -1,
			Overhang:   c.Overhang,
			RevComp:    c.RevComp,
			Fidelity:   fidelity,
			Efficiency: p.model.efficiency(c.Overhang),
			Score:      c.Score,
		}
		sol.Fidelity *= fidelity
		sol.Efficiency *= sol.Junctions[i].Efficiency
		compositeSum += c.Score.Composite
	}
	if len(picked) > 0 {
		sol.Composite = compositeSum / float64(len(picked))
	} else {
		sol.Fidelity = 0
		sol.Efficiency = 0
	}

	return sol
}
