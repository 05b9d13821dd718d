package hinge

// frame is one level of the branch and bound search stack: a region,
// a cursor into its pool and the candidate currently on the path
type frame struct {
	idx    int
	next   int
	placed *Candidate
}

// branchAndBound searches candidate assignments depth first over the
// truncated region pools, exact up to the pruning. The search runs on
// an explicit frame stack rather than recursion so its depth and node
// count stay visible and boundable. Branches die three ways: the
// candidate collides with the path, set fidelity falls under the
// absolute floor, or the branch's projected final score can't clear
// the incumbent. The projection assumes the rest of the branch scores
// like its average so far, which is not admissible, so a pruned
// branch can in rare cases hide the true optimum
func (d *designer) branchAndBound() *Solution {
	stats := &Stats{}

	var regions []*region
	var diags []*RegionDiagnostic
	for _, r := range d.regions {
		if len(r.pool) == 0 {
			diags = append(diags, diagnose(r, "no viable candidates in the region window"))
		} else {
			regions = append(regions, r)
		}
	}

	n := len(regions)
	if n == 0 {
		return d.solutionFrom(StrategyBnb, nil, diags, stats)
	}

	// a greedy pass seeds the incumbent so pruning has a bar to
	// clear from the first node, and so the search never returns
	// anything worse than greedy
	bestScore := -1.0
	var bestPath []placement
	if seed, _ := d.greedyPath(); len(seed) == n {
		bestPath = seed
		bestScore = pathScore(seed)
	}

	path := make([]placement, 0, n)
	used := map[string]bool{}
	stack := []*frame{{}}

	for len(stack) > 0 {
		if stats.Nodes >= d.conf.BnbMaxNodes {
			break
		}

		f := stack[len(stack)-1]
		r := regions[f.idx]

		// strip this frame's previous placement before trying the
		// next sibling
		if f.placed != nil {
			path = path[:len(path)-1]
			release(used, f.placed)
			f.placed = nil
		}

		var pick *Candidate
		for f.next < len(r.pool) {
			c := r.pool[f.next]
			f.next++
			stats.Nodes++

			if collides(used, c) {
				stats.Pruned++
				continue
			}

			set := append(overhangsOf(path), c.Overhang)
			if d.model.setFidelity(set) < d.conf.BnbFloor {
				stats.Pruned++
				continue
			}

			if bestScore >= 0 {
				projected := (pathScoreSum(path) + c.Score.Composite) / float64(len(path)+1)
				if projected < bestScore*d.conf.BnbPruneRatio {
					stats.Pruned++
					continue
				}
			}

			pick = c
			break
		}

		if pick == nil {
			stack = stack[:len(stack)-1]
			continue
		}

		path = append(path, placement{r, pick})
		claim(used, pick)
		f.placed = pick
		stats.MaxDepth = max(stats.MaxDepth, len(path))

		if f.idx == n-1 {
			// complete assignment. The loop revisits this frame next,
			// strips the placement and moves to the next sibling
			if score := pathScore(path); score > bestScore {
				bestScore = score
				bestPath = append([]placement(nil), path...)
			}
		} else {
			stack = append(stack, &frame{idx: f.idx + 1})
		}
	}

	if bestPath == nil {
		// nothing completed within the floors and budget, hand back
		// the best effort greedy path instead of an empty answer
		path, gdiags := d.greedyPath()
		return d.solutionFrom(StrategyBnb, path, gdiags, stats)
	}

	return d.solutionFrom(StrategyBnb, bestPath, diags, stats)
}
