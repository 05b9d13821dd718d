package hinge

import (
	"fmt"
	"strings"

	"github.com/hingebio/hinge/config"
)

// primerFallbackScore is the fixed primer sub-score for windows too
// short to profile
const primerFallbackScore = 25.0

// Risk scoring knobs. Penalties subtract from a perfect 100
const (
	sitePenalty        = 40.0
	misprimePenalty    = 25.0
	homopolymerPenalty = 15.0
	misprimeRun        = 8
	homopolymerRun     = 6
)

// Context scoring knobs
const (
	offFramePenalty = 50.0
	domainPenalty   = 60.0
	scarBonus       = 10.0
)

// mocloScars are the standard modular cloning fusion sites. A junction
// that lands on one leaves a scar compatible with existing MoClo part
// libraries, so coding targets rate them a little higher
var mocloScars = map[string]bool{
	"GGAG": true,
	"TACT": true,
	"AATG": true,
	"AGGT": true,
	"TTCG": true,
	"GCTT": true,
	"GGTA": true,
	"CGCT": true,
}

// 3' pentamer binding energies this far from ideal score zero
const (
	end3IdealDG = -7.5
	end3TolDG   = 4.0
)

// Hairpin and homodimer folds are harmless above the first energy and
// disqualifying below the second
const (
	hairpinSafeDG = -2.0
	hairpinBadDG  = -9.0
	dimerSafeDG   = -5.0
	dimerBadDG    = -12.0
)

// Score is the composite quality breakdown of one candidate. All
// sub-scores run 0 to 100. Sub-scores that don't apply to a candidate,
// like primer windows for a positionless pool overhang, drop out of
// the composite and the remaining weights renormalize
type Score struct {
	// Composite is the weighted aggregate, 0 to 100
	Composite float64 `json:"composite"`

	// Overhang is the ligation sub-score, the overhang's own fidelity
	// times its efficiency
	Overhang float64 `json:"overhang"`

	// Upstream and Downstream score the primer windows on either side
	// of the junction
	Upstream   float64 `json:"upstream,omitempty"`
	Downstream float64 `json:"downstream,omitempty"`

	// Risk penalizes enzyme site re-creation, mispriming between the
	// junction's flanks and long homopolymer runs across the scar
	Risk float64 `json:"risk,omitempty"`

	// Context rewards frame preserving positions clear of annotated
	// domains. Standard fusion site scars rate a little higher in
	// coding sequence
	Context float64 `json:"context,omitempty"`

	// Valid is false for the sentinel zero score of a degenerate
	// candidate
	Valid bool `json:"valid"`

	// Notes are diagnostics accumulated while scoring
	Notes []string `json:"notes,omitempty"`
}

// scorer computes composite scores for candidates against one target
type scorer struct {
	seq    string
	enz    Enzyme
	model  *fidelityModel
	oracle PrimerOracle
	conf   *config.Config

	// codingStart is the 0-based offset of the reading frame, -1
	// when the target isn't coding
	codingStart int

	// domains are annotated spans junctions should stay out of
	domains []Range
}

// quickScore ranks candidates cheaply for pool truncation, the
// ligation sub-score alone, no oracle calls
func (s *scorer) quickScore(c *Candidate) float64 {
	return s.overhangScore(c.Overhang)
}

// score computes the full composite for one candidate
func (s *scorer) score(c *Candidate) *Score {
	if !validBases(c.Overhang) || len(c.Overhang) != s.enz.OverhangLen {
		return &Score{} // sentinel, composite 0
	}

	sc := &Score{Valid: true}
	weighted := 0.0
	weights := 0.0
	add := func(value, weight float64) {
		weighted += value * weight
		weights += weight
	}

	sc.Overhang = s.overhangScore(c.Overhang)
	add(sc.Overhang, s.conf.WeightOverhang)

	if c.Start >= 0 {
		if s.oracle != nil {
			var notes []string
			sc.Upstream, notes = s.primerScore(s.upWindow(c), "upstream")
			sc.Notes = append(sc.Notes, notes...)
			add(sc.Upstream, s.conf.WeightUpstream)

			sc.Downstream, notes = s.primerScore(s.downWindow(c), "downstream")
			sc.Notes = append(sc.Notes, notes...)
			add(sc.Downstream, s.conf.WeightDownstream)
		}

		var notes []string
		sc.Risk, notes = s.riskScore(c)
		sc.Notes = append(sc.Notes, notes...)
		add(sc.Risk, s.conf.WeightRisk)

		if s.codingStart >= 0 || len(s.domains) > 0 {
			sc.Context, notes = s.contextScore(c)
			sc.Notes = append(sc.Notes, notes...)
			add(sc.Context, s.conf.WeightContext)
		}
	}

	if weights > 0 {
		sc.Composite = weighted / weights
	}
	return sc
}

// overhangScore is the ligation sub-score of an overhang on its own:
// its fidelity alone in the pot times its efficiency, scaled to 100
func (s *scorer) overhangScore(o string) float64 {
	return 100 * s.model.junctionFidelity(o, []string{o}) * s.model.efficiency(o)
}

// upWindow is the assumed forward primer annealing window upstream of
// the junction
func (s *scorer) upWindow(c *Candidate) string {
	return s.seq[max(0, c.Start-s.conf.PrimerWindow):c.Start]
}

// downWindow is the assumed reverse primer annealing window downstream
// of the junction
func (s *scorer) downWindow(c *Candidate) string {
	from := c.Start + s.enz.OverhangLen
	return s.seq[min(from, len(s.seq)):min(from+s.conf.PrimerWindow, len(s.seq))]
}

// primerScore profiles one primer window through the oracle and mixes
// its features into a 0 to 100 sub-score
func (s *scorer) primerScore(window, side string) (float64, []string) {
	if len(window) < s.conf.PrimerWindowMin {
		return primerFallbackScore, []string{fmt.Sprintf("%s window is %dbp, too short to profile", side, len(window))}
	}

	prof, err := s.oracle.Profile(window)
	if err != nil {
		return primerFallbackScore, []string{fmt.Sprintf("%s window profile failed: %v", side, err)}
	}

	tm := 1 - min(abs(prof.Tm-s.conf.PrimerTmTarget)/s.conf.PrimerTmTolerance, 1)
	hairpin := scaleDG(prof.HairpinDG, hairpinSafeDG, hairpinBadDG)
	dimer := scaleDG(prof.HomodimerDG, dimerSafeDG, dimerBadDG)
	end3 := 1 - min(abs(prof.End3DG-end3IdealDG)/end3TolDG, 1)
	clamp := 0.0
	if prof.GCClamp {
		clamp = 1
	}
	quad := 1.0
	if prof.GQuad {
		quad = 0
	}

	mix := 0.30*tm + 0.20*hairpin + 0.15*dimer + 0.15*end3 + 0.10*clamp + 0.10*quad
	return 100 * mix, nil
}

// riskScore penalizes junction placements that threaten the assembly
// even when the overhang itself is fine
func (s *scorer) riskScore(c *Candidate) (float64, []string) {
	score := 100.0
	var notes []string

	scar := c.upFlank + c.Overhang + c.downFlank
	if strings.Contains(scar, s.enz.Recog) || strings.Contains(scar, revComp(s.enz.Recog)) {
		score -= sitePenalty
		notes = append(notes, fmt.Sprintf("junction carries a %s site", s.enz.Name))
	}

	run := max(commonRun(c.upFlank, c.downFlank), commonRun(c.upFlank, revComp(c.downFlank)))
	if run >= misprimeRun {
		score -= misprimePenalty
		notes = append(notes, fmt.Sprintf("flanks share a %dbp run, mispriming risk", run))
	}

	if run := longestRun(scar); run >= homopolymerRun {
		score -= homopolymerPenalty
		notes = append(notes, fmt.Sprintf("%dbp homopolymer run across the junction", run))
	}

	return max(score, 0), notes
}

// contextScore judges a junction position against the target's
// annotations. Frame breaks and domain splits subtract, a standard
// fusion site scar inside coding sequence adds back
func (s *scorer) contextScore(c *Candidate) (float64, []string) {
	score := 100.0
	var notes []string

	if s.codingStart >= 0 {
		if d := (c.Start - s.codingStart) % 3; (d+3)%3 != 0 {
			score -= offFramePenalty
			notes = append(notes, "junction is off the reading frame")
		}
		if mocloScars[c.Overhang] {
			score += scarBonus
		}
	}

	for _, dom := range s.domains {
		if dom.overlaps(c.Start, c.Start+s.enz.OverhangLen) {
			score -= domainPenalty
			notes = append(notes, fmt.Sprintf("junction splits the %d..%d domain", dom.Start, dom.End))
			break
		}
	}

	return min(max(score, 0), 100), notes
}

// scaleDG maps a folding energy onto 0..1, 1 at or above safe, 0 at
// or below bad
func scaleDG(dg, safe, bad float64) float64 {
	if dg >= safe {
		return 1
	}
	if dg <= bad {
		return 0
	}
	return (dg - bad) / (safe - bad)
}

// commonRun returns the length of the longest substring the two
// sequences share
func commonRun(a, b string) int {
	longest := 0
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				longest = max(longest, cur[j])
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return longest
}

// longestRun returns the length of the longest single base run
func longestRun(seq string) int {
	longest, run := 0, 0
	for i := 0; i < len(seq); i++ {
		if i > 0 && seq[i] == seq[i-1] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// abs of a float
func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
