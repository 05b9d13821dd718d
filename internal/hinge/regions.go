package hinge

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hingebio/hinge/config"
)

// region is one junction search window with its scored candidate pool
type region struct {
	// index in target order
	index int

	// ideal is the junction position an even split would use
	ideal int

	// window is the span the region may place its junction in
	window Range

	// pool holds the region's candidates, best composite first,
	// truncated to the configured pool size
	pool []*Candidate
}

// newRegions lays out one junction region per fragment boundary. A
// request the target can't satisfy returns an Infeasibility instead
func newRegions(seqLen, fragments int, conf *config.Config) ([]*region, *Infeasibility) {
	suggested := seqLen / conf.FragmentsMinSize

	if fragments < 2 {
		return nil, &Infeasibility{
			Reason:             fmt.Sprintf("a %d fragment assembly has no junctions to design", fragments),
			SuggestedFragments: suggested,
		}
	}
	if avg := seqLen / fragments; avg < conf.FragmentsMinSize {
		return nil, &Infeasibility{
			Reason: fmt.Sprintf(
				"%d fragments of a %dbp target average %dbp each, under the %dbp minimum",
				fragments, seqLen, avg, conf.FragmentsMinSize),
			SuggestedFragments: suggested,
		}
	}

	regions := make([]*region, fragments-1)
	for i := range regions {
		ideal := seqLen * (i + 1) / fragments
		regions[i] = &region{
			index: i,
			ideal: ideal,
			window: Range{
				Start: max(ideal-conf.RegionRadius, 0),
				End:   min(ideal+conf.RegionRadius, seqLen),
			},
		}
	}
	return regions, nil
}

// fillRegions hands each scanned candidate to the region whose ideal
// position sits nearest, then scores every region's pool. Regions own
// disjoint candidates after partitioning, so they score concurrently
func fillRegions(regions []*region, candidates []*Candidate, s *scorer, conf *config.Config) {
	claimed := make([][]*Candidate, len(regions))
	for _, c := range candidates {
		best := -1
		for i, r := range regions {
			if !r.window.contains(c.Start) {
				continue
			}
			if best < 0 || absInt(c.Start-r.ideal) < absInt(c.Start-regions[best].ideal) {
				best = i
			}
		}
		if best >= 0 {
			claimed[best] = append(claimed[best], c)
		}
	}

	var wg sync.WaitGroup
	for i, r := range regions {
		wg.Add(1)
		go func(r *region, pool []*Candidate) {
			defer wg.Done()
			r.fill(pool, s, conf.RegionPoolSize)
		}(r, claimed[i])
	}
	wg.Wait()
}

// fill ranks a region's candidates by quick score, keeps the top of
// the list, then fully scores and reorders the keepers. Only pool
// members pay for oracle calls
func (r *region) fill(candidates []*Candidate, s *scorer, poolSize int) {
	type ranked struct {
		c     *Candidate
		quick float64
	}
	rankedPool := make([]ranked, len(candidates))
	for i, c := range candidates {
		rankedPool[i] = ranked{c, s.quickScore(c)}
	}
	sort.SliceStable(rankedPool, func(i, j int) bool {
		return rankedPool[i].quick > rankedPool[j].quick
	})

	keep := min(len(rankedPool), poolSize)
	r.pool = make([]*Candidate, keep)
	for i := 0; i < keep; i++ {
		c := rankedPool[i].c
		c.Score = s.score(c)
		r.pool[i] = c
	}

	sort.SliceStable(r.pool, func(i, j int) bool {
		if r.pool[i].Score.Composite != r.pool[j].Score.Composite {
			return r.pool[i].Score.Composite > r.pool[j].Score.Composite
		}
		return r.pool[i].Start < r.pool[j].Start
	})
}

// absInt of an int
func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
