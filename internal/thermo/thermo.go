// Package thermo predicts primer window thermodynamics with the
// SantaLucia nearest neighbor parameter set: melting temperature,
// hairpin and homodimer folding energies and 3' end stability. It is
// the default PrimerOracle behind the junction scorer.
package thermo

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/hingebio/hinge/internal/hinge"
)

// rcal is the gas constant in cal/(K*mol)
const rcal = 1.987

// Nearest neighbor propagation parameters at 1M Na+, kcal/mol and
// cal/(K*mol), keyed by the top strand dimer 5' to 3'.
// SantaLucia & Hicks (2004)
var nnDH = map[string]float64{
	"AA": -7.9, "TT": -7.9, "AT": -7.2, "TA": -7.2,
	"CA": -8.5, "TG": -8.5, "GT": -8.4, "AC": -8.4,
	"CT": -7.8, "AG": -7.8, "GA": -8.2, "TC": -8.2,
	"CG": -10.6, "GC": -9.8, "GG": -8.0, "CC": -8.0,
}

var nnDS = map[string]float64{
	"AA": -22.2, "TT": -22.2, "AT": -20.4, "TA": -21.3,
	"CA": -22.7, "TG": -22.7, "GT": -22.4, "AC": -22.4,
	"CT": -21.0, "AG": -21.0, "GA": -22.2, "TC": -22.2,
	"CG": -27.2, "GC": -24.4, "GG": -19.9, "CC": -19.9,
}

// Duplex initiation and self-complementary symmetry corrections
const (
	initDH     = 0.2
	initDS     = -5.7
	symmetryDS = -1.4
)

// Fold scan limits: stems shorter than minStem don't hold and hairpin
// loops tighter than minLoop can't close
const (
	minStem = 3
	minLoop = 3
)

// hairpinLoopDG is the closure cost of a hairpin loop, kcal/mol
const hairpinLoopDG = 3.5

// end3Len is how many 3' terminal bases anchor polymerase extension
const end3Len = 5

// gquadRegex matches the G-quadruplex motif, four G tracts bridged by
// short loops
var gquadRegex = regexp.MustCompile("G{3}[ACGT]{1,7}G{3}[ACGT]{1,7}G{3}[ACGT]{1,7}G{3}")

// Model holds the wet lab conditions the predictions assume
type Model struct {
	// Na is the monovalent cation concentration, mol/L
	Na float64

	// Primer is the total primer concentration, mol/L
	Primer float64

	// Temp is the reaction temperature in Celsius, folding energies
	// are evaluated at it
	Temp float64
}

// New returns a Model at standard Golden Gate conditions: 50mM
// monovalent salt, 250nM primer, a 37C one pot reaction
func New() *Model {
	return &Model{Na: 0.05, Primer: 250e-9, Temp: 37}
}

// Profile computes the thermodynamic feature set of one primer window
func (m *Model) Profile(window string) (hinge.PrimerProfile, error) {
	seq := strings.ToUpper(strings.TrimSpace(window))
	if len(seq) < 2 {
		return hinge.PrimerProfile{}, errors.New("window too short to profile")
	}
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return hinge.PrimerProfile{}, errors.New("window has a base other than A/C/G/T")
		}
	}

	tm, err := m.tm(seq)
	if err != nil {
		return hinge.PrimerProfile{}, err
	}

	end := seq
	if len(seq) > end3Len {
		end = seq[len(seq)-end3Len:]
	}

	return hinge.PrimerProfile{
		Tm:          tm,
		HairpinDG:   m.hairpinDG(seq),
		HomodimerDG: m.homodimerDG(seq),
		End3DG:      m.duplexDG(end),
		GCClamp:     strings.ContainsAny(end, "GC"),
		GQuad:       gquadRegex.MatchString(seq),
	}, nil
}

// tm is the two state nearest neighbor melting temperature in Celsius:
// stack sums, a salt corrected entropy and the strand concentration
// term
func (m *Model) tm(seq string) (float64, error) {
	dH := initDH
	dS := initDS
	for i := 0; i < len(seq)-1; i++ {
		dh, ok := nnDH[seq[i:i+2]]
		if !ok {
			return 0, errors.New("invalid base (need A/C/G/T)")
		}
		dH += dh
		dS += nnDS[seq[i:i+2]]
	}

	self := selfComplementary(seq)
	if self {
		dS += symmetryDS
	}

	na := m.Na
	if na <= 0 {
		na = 1e-6
	}
	dS += 0.368 * float64(len(seq)-1) * math.Log(na)

	ct := math.Max(m.Primer, 1e-12)
	cFactor := 4.0
	if self {
		cFactor = 1.0
	}

	tmK := (dH * 1000.0) / (dS + rcal*math.Log(ct/cFactor))
	return tmK - 273.15, nil
}

// duplexDG is the formation energy of the sequence annealed to its
// perfect complement at the model's temperature, kcal/mol
func (m *Model) duplexDG(seq string) float64 {
	if len(seq) < 2 {
		return 0
	}

	dH := initDH
	dS := initDS
	for i := 0; i < len(seq)-1; i++ {
		dH += nnDH[seq[i:i+2]]
		dS += nnDS[seq[i:i+2]]
	}

	na := m.Na
	if na <= 0 {
		na = 1e-6
	}
	dS += 0.368 * float64(len(seq)-1) * math.Log(na)

	tK := m.Temp + 273.15
	return dH - tK*dS/1000.0
}

// hairpinDG estimates the strongest hairpin fold of the window: every
// self complementary stem with a loop of at least minLoop bases, the
// stem's stack energy against a fixed loop closure cost. Zero when
// nothing folds
func (m *Model) hairpinDG(seq string) float64 {
	n := len(seq)
	best := 0.0
	for i := 0; i < n; i++ {
		for j := i + 2*minStem + minLoop - 1; j < n; j++ {
			k := 0
			for j-i-2*(k+1)+1 >= minLoop && wc(seq[i+k], seq[j-k]) {
				k++
			}
			if k < minStem {
				continue
			}

			if dg := m.duplexDG(seq[i:i+k]) + hairpinLoopDG; dg < best {
				best = dg
			}
		}
	}
	return best
}

// homodimerDG estimates the strongest annealing of the window against
// another copy of itself: the longest run of Watson-Crick pairs over
// every antiparallel alignment. Zero when no run reaches minStem
func (m *Model) homodimerDG(seq string) float64 {
	n := len(seq)
	bestRun := ""

	// in an antiparallel duplex of two copies, position i of one copy
	// faces position shift-i of the other
	for shift := 0; shift <= 2*(n-1); shift++ {
		run := 0
		lo := max(0, shift-n+1)
		hi := min(n-1, shift)
		for i := lo; i <= hi; i++ {
			if !wc(seq[i], seq[shift-i]) {
				run = 0
				continue
			}
			run++
			if run > len(bestRun) {
				bestRun = seq[i-run+1 : i+1]
			}
		}
	}

	if len(bestRun) < minStem {
		return 0
	}
	return m.duplexDG(bestRun)
}

// wc returns whether two bases pair Watson-Crick
func wc(a, b byte) bool {
	switch a {
	case 'A':
		return b == 'T'
	case 'T':
		return b == 'A'
	case 'C':
		return b == 'G'
	case 'G':
		return b == 'C'
	}
	return false
}

// selfComplementary returns whether the sequence is its own reverse
// complement
func selfComplementary(seq string) bool {
	n := len(seq)
	for i := 0; i < n; i++ {
		if !wc(seq[i], seq[n-1-i]) {
			return false
		}
	}
	return true
}
