package hinge

// hybrid races the optimizers and returns the winner, the rest riding
// along under Alternatives. Greedy and annealing always run, branch
// and bound joins below the fragment ceiling where exact search stays
// cheap. A complete solution beats an incomplete one, completeness
// equal the higher composite wins, ties keep the earlier finisher. The
// returned Strategy names the optimizer that produced the solution
func (d *designer) hybrid() *Solution {
	sols := []*Solution{d.greedy()}
	if len(d.regions)+1 <= d.conf.BnbMaxFragments {
		sols = append(sols, d.branchAndBound())
	}
	sols = append(sols, d.anneal())

	winner := sols[0]
	for _, s := range sols[1:] {
		if better(s, winner) {
			winner = s
		}
	}
	for _, s := range sols {
		if s != winner {
			winner.Alternatives = append(winner.Alternatives, s)
		}
	}
	return winner
}

// better orders two solutions: completeness first, then junction
// count, then composite score
func better(a, b *Solution) bool {
	if a.Complete != b.Complete {
		return a.Complete
	}
	if len(a.Junctions) != len(b.Junctions) {
		return len(a.Junctions) > len(b.Junctions)
	}
	return a.Composite > b.Composite
}
