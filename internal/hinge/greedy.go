package hinge

import "fmt"

// greedy fills regions left to right, taking each region's best
// scoring candidate that doesn't collide with an earlier pick and
// doesn't drag the running set fidelity under the floor. The first
// junction is accepted unconditionally. One pass, no backtracking,
// the aggregate record is computed once at the end
func (d *designer) greedy() *Solution {
	path, diags := d.greedyPath()
	return d.solutionFrom(StrategyGreedy, path, diags, nil)
}

// greedyPath is the selection pass behind greedy, shared with branch
// and bound's incumbent seeding and annealing's fallback seed
func (d *designer) greedyPath() ([]placement, []*RegionDiagnostic) {
	var path []placement
	var diags []*RegionDiagnostic
	used := map[string]bool{}

	for _, r := range d.regions {
		if len(r.pool) == 0 {
			diags = append(diags, diagnose(r, "no viable candidates in the region window"))
			continue
		}

		var pick *Candidate
		collided := 0
		for _, c := range r.pool {
			if collides(used, c) {
				collided++
				continue
			}
			if len(path) > 0 {
				set := append(overhangsOf(path), c.Overhang)
				if d.model.setFidelity(set) < d.conf.GreedyFloor {
					continue
				}
			}
			pick = c
			break
		}

		if pick == nil {
			if collided == len(r.pool) {
				diags = append(diags, diagnose(r, "every pool candidate collides with an earlier overhang"))
			} else {
				diags = append(diags, diagnose(r,
					fmt.Sprintf("no candidate keeps set fidelity above %.2f", d.conf.GreedyFloor)))
			}
			continue
		}

		claim(used, pick)
		path = append(path, placement{r, pick})
	}

	return path, diags
}

// pathScore is the objective every strategy maximizes, the mean of
// the placed candidates' composite scores
func pathScore(path []placement) float64 {
	if len(path) == 0 {
		return 0
	}
	return pathScoreSum(path) / float64(len(path))
}

// pathScoreSum is the unnormalized objective
func pathScoreSum(path []placement) (sum float64) {
	for _, p := range path {
		sum += p.c.Score.Composite
	}
	return
}
