package hinge

import "math"

// anneal runs Metropolis annealing over region picks. The state is one
// candidate per fillable region. A proposal swaps one region to a
// random pool alternative, a swap that collides with the rest of the
// state is rejected outright. Improving swaps are always accepted,
// worsening ones with probability exp(delta/T) under a geometrically
// cooling temperature. The best state ever visited is returned, never
// just the final one
func (d *designer) anneal() *Solution {
	stats := &Stats{InitialTemp: d.conf.AnnealStartTemp}

	path, diags := d.seedPath()
	if len(path) == 0 {
		return d.solutionFrom(StrategyAnneal, path, diags, stats)
	}

	// slots with an alternative to swap to
	var swappable []int
	for i, p := range path {
		if len(p.r.pool) > 1 {
			swappable = append(swappable, i)
		}
	}
	if len(swappable) == 0 {
		return d.solutionFrom(StrategyAnneal, path, diags, stats)
	}

	used := map[string]bool{}
	for _, p := range path {
		claim(used, p.c)
	}

	cur := pathScore(path)
	best := append([]placement(nil), path...)
	bestScore := cur
	stats.bestTrace = append(stats.bestTrace, bestScore)

	temp := d.conf.AnnealStartTemp
	for i := 0; i < d.conf.AnnealSteps; i++ {
		slot := swappable[d.rng.Intn(len(swappable))]
		p := path[slot]
		alt := p.r.pool[d.rng.Intn(len(p.r.pool))]

		temp *= d.conf.AnnealCooling
		if alt == p.c {
			continue
		}
		stats.Proposed++

		release(used, p.c)
		if collides(used, alt) {
			claim(used, p.c)
			continue
		}

		path[slot] = placement{p.r, alt}
		claim(used, alt)
		next := pathScore(path)

		delta := next - cur
		if delta >= 0 || d.rng.Float64() < math.Exp(delta/temp) {
			stats.Accepted++
			cur = next
			if cur > bestScore {
				bestScore = cur
				best = append([]placement(nil), path...)
				stats.bestTrace = append(stats.bestTrace, bestScore)
			}
		} else {
			release(used, alt)
			path[slot] = p
			claim(used, p.c)
		}
	}

	return d.solutionFrom(StrategyAnneal, best, diags, stats)
}

// seedPath builds the annealing start state: each region's best
// non-colliding candidate, with no fidelity floor so the walk starts
// from the widest usable state. When collisions leave a region empty
// the stricter greedy path is used instead
func (d *designer) seedPath() ([]placement, []*RegionDiagnostic) {
	var path []placement
	var diags []*RegionDiagnostic
	used := map[string]bool{}

	for _, r := range d.regions {
		if len(r.pool) == 0 {
			diags = append(diags, diagnose(r, "no viable candidates in the region window"))
			continue
		}

		var pick *Candidate
		for _, c := range r.pool {
			if !collides(used, c) {
				pick = c
				break
			}
		}
		if pick == nil {
			// collision starved, greedy untangles what it can
			return d.greedyPath()
		}

		claim(used, pick)
		path = append(path, placement{r, pick})
	}

	return path, diags
}

// calibrateTemperature binary searches the initial temperature whose
// acceptance ratio over a sample of worsening deltas lands at the
// target. Used by pool runs, where score scales vary with the pool
// instead of sitting in a known range
func calibrateTemperature(deltas []float64, target, fallback float64) float64 {
	if len(deltas) == 0 {
		return fallback
	}

	lo, hi := -6.0, 6.0
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		if acceptRatio(deltas, math.Pow(10, mid)) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return math.Pow(10, (lo+hi)/2)
}

// acceptRatio is the mean Metropolis acceptance of the worsening
// deltas at one temperature. Monotonic in temperature, which is what
// lets calibration bisect
func acceptRatio(deltas []float64, temp float64) float64 {
	if len(deltas) == 0 {
		return 1
	}

	sum := 0.0
	for _, delta := range deltas {
		sum += math.Exp(delta / temp)
	}
	return sum / float64(len(deltas))
}
