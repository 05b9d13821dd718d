package hinge

import (
	"runtime"
	"sync"

	"github.com/hingebio/hinge/config"
)

// riskFlank is how much flanking sequence each candidate carries for
// mispriming and site re-creation checks
const riskFlank = 12

// Range is a half open [Start, End) span of the target sequence
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// overlaps returns whether [start, end) overlaps the range
func (r Range) overlaps(start, end int) bool {
	return start < r.End && end > r.Start
}

// covers returns whether [start, end) sits entirely inside the range
func (r Range) covers(start, end int) bool {
	return start >= r.Start && end <= r.End
}

// contains returns whether the index sits inside the range
func (r Range) contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Candidate is one overhang option at one position of the target.
// Candidates are immutable once scanned, pools only filter, reorder
// and copy them
type Candidate struct {
	// Start is the 0-based offset of the overhang in the target,
	// -1 for pool candidates without a position
	Start int `json:"start"`

	// Overhang at that position, uppercase
	Overhang string `json:"overhang"`

	// RevComp is the overhang's reverse complement, the strand the
	// opposite fragment end will carry
	RevComp string `json:"revComp"`

	// GCContent of the overhang
	GCContent float64 `json:"gcContent"`

	// Composition flags
	HighGC bool `json:"highGC,omitempty"`
	LowGC  bool `json:"lowGC,omitempty"`
	TNNA   bool `json:"tnna,omitempty"`

	// Score is the candidate's composite score, attached when the
	// candidate is admitted to a pool
	Score *Score `json:"score,omitempty"`

	upFlank   string
	downFlank string
}

// newCandidate builds the candidate at one position of the target
func newCandidate(seq string, start, hangLen int) *Candidate {
	o := seq[start : start+hangLen]
	return &Candidate{
		Start:     start,
		Overhang:  o,
		RevComp:   revComp(o),
		GCContent: gcRatio(o),
		HighGC:    gcCount(o) == hangLen,
		LowGC:     gcCount(o) == 0,
		TNNA:      hasTNNAPattern(o),
		upFlank:   seq[max(0, start-riskFlank):start],
		downFlank: seq[start+hangLen : min(len(seq), start+hangLen+riskFlank)],
	}
}

// poolCandidate builds a positionless candidate from a bare overhang.
// The overhang is assumed validated and uppercased
func poolCandidate(overhang string) *Candidate {
	return &Candidate{
		Start:     -1,
		Overhang:  overhang,
		RevComp:   revComp(overhang),
		GCContent: gcRatio(overhang),
		HighGC:    gcCount(overhang) == len(overhang),
		LowGC:     gcCount(overhang) == 0,
		TNNA:      hasTNNAPattern(overhang),
	}
}

// scanCandidates walks every in-bounds offset of the target and
// returns the viable overhang candidates in position order. Offsets
// are independent, so chunks of the target are scanned concurrently
// and stitched back together in order
func scanCandidates(seq string, enz Enzyme, model *fidelityModel, allowed, forbidden []Range, conf *config.Config) []*Candidate {
	hangLen := enz.OverhangLen
	lo := conf.ScanMinFromEnds
	hi := len(seq) - conf.ScanMinFromEnds - hangLen
	if hi < lo {
		return nil
	}

	n := hi - lo + 1
	workers := runtime.GOMAXPROCS(0)
	if n < 512 || workers < 2 {
		return capCandidates(scanRange(seq, hangLen, lo, hi, model, allowed, forbidden), conf.ScanLimit)
	}

	chunk := (n + workers - 1) / workers
	parts := make([][]*Candidate, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		from := lo + w*chunk
		to := min(from+chunk-1, hi)
		if from > to {
			continue
		}

		wg.Add(1)
		go func(w, from, to int) {
			defer wg.Done()
			parts[w] = scanRange(seq, hangLen, from, to, model, allowed, forbidden)
		}(w, from, to)
	}
	wg.Wait()

	var candidates []*Candidate
	for _, part := range parts {
		candidates = append(candidates, part...)
	}
	return capCandidates(candidates, conf.ScanLimit)
}

// scanRange scans offsets [from, to] of the target
func scanRange(seq string, hangLen, from, to int, model *fidelityModel, allowed, forbidden []Range) []*Candidate {
	var candidates []*Candidate
	for start := from; start <= to; start++ {
		end := start + hangLen

		if len(allowed) > 0 {
			inside := false
			for _, r := range allowed {
				if r.covers(start, end) {
					inside = true
					break
				}
			}
			if !inside {
				continue
			}
		}

		excluded := false
		for _, r := range forbidden {
			if r.overlaps(start, end) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		o := seq[start:end]
		if !validBases(o) || isPalindrome(o) || isHomopolymer(o) || !model.hasData(o) {
			continue
		}

		candidates = append(candidates, newCandidate(seq, start, hangLen))
	}
	return candidates
}

// capCandidates bounds a candidate list to its first limit entries.
// The scan walks 5' to 3', so a capped result is the leftmost stretch
// of the target's candidates rather than a sample of all of them
func capCandidates(candidates []*Candidate, limit int) []*Candidate {
	if limit < 1 || len(candidates) <= limit {
		return candidates
	}
	return candidates[:limit]
}
