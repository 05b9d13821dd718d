package hinge

import "github.com/hingebio/hinge/config"

// fallbackFidelity is a static fidelity table for overhangs without
// usable ligation counts, either because the enzyme has no measured
// profile or because the profile saw no events for the overhang.
// Estimates from published three base assembly sets, not measurements
var fallbackFidelity = map[string]float64{
	"AAG": 0.95, "CTT": 0.95,
	"ATG": 0.94, "CAT": 0.94,
	"ACC": 0.93, "GGT": 0.93,
	"AGG": 0.92, "CCT": 0.92,
	"GAC": 0.92, "GTC": 0.92,
	"CAG": 0.91, "CTG": 0.91,
	"AGC": 0.90, "GCT": 0.90,
	"CGA": 0.89, "TCG": 0.89,
	"ACG": 0.88, "CGT": 0.88,
	"GCA": 0.87, "TGC": 0.87,
	"CCG": 0.84, "CGG": 0.84,
	"GCG": 0.80, "CGC": 0.80,
	"GGG": 0.74, "CCC": 0.74,
	"AAA": 0.72, "TTT": 0.72,

	"AGGA": 0.93, "TCCT": 0.93,
	"ATCC": 0.92, "GGAT": 0.92,
	"CGGG": 0.78, "CCCG": 0.78,
	"GGGG": 0.58, "CCCC": 0.58,
}

// fallbackFidelityDefault is the stock fidelity-fallback setting,
// covering overhangs absent from the table above
const fallbackFidelityDefault = 0.85

// poorOverhangs maps overhangs with known poor ligation efficiency to
// an efficiency factor, overriding the composition heuristics below
var poorOverhangs = map[string]float64{
	"AAAA": 0.40,
	"TTTT": 0.40,
	"GGGG": 0.35,
	"CCCC": 0.35,
	"GCGG": 0.55,
	"CCGC": 0.55,
	"TTAT": 0.50,
	"ATAA": 0.50,
	"AAA":  0.45,
	"TTT":  0.45,
	"GGG":  0.40,
	"CCC":  0.40,
}

// composition based efficiency factors. An overhang can accumulate
// more than one
const (
	homopolymerEfficiency = 0.60
	highGCEfficiency      = 0.80
	lowGCEfficiency       = 0.75
	tnnaEfficiency        = 0.85
)

// poorPatternStrength scales the composition factors down when the
// overhang is already in poorOverhangs. The table entry prices in the
// flaw, so the matching pattern keeps only this share of its bite
const poorPatternStrength = 0.3

// fidelityModel estimates ligation fidelity and efficiency for
// overhangs against one enzyme's measured profile
type fidelityModel struct {
	// profile is the enzyme's ligation profile, nil when none was
	// measured. Fidelity then comes from the static fallback table
	profile *LigationProfile

	// legacy switches junction denominators from the chosen overhang
	// set to the whole profile, the older and more pessimistic model
	legacy bool

	// fallbackDefault covers overhangs absent from the static table
	fallbackDefault float64

	rowSums map[string]float64
}

// newFidelityModel builds a model over a profile, taking the legacy
// switch and the fallback constant from conf. The profile may be nil
func newFidelityModel(profile *LigationProfile, conf *config.Config) *fidelityModel {
	m := &fidelityModel{
		profile:         profile,
		legacy:          conf.FidelityLegacy,
		fallbackDefault: conf.FidelityFallback,
	}

	if m.legacy && profile != nil {
		m.rowSums = make(map[string]float64, len(profile.overhangs))
		for i, o := range profile.overhangs {
			sum := 0.0
			for _, c := range profile.counts[i] {
				sum += c
			}
			m.rowSums[o] = sum
		}
	}
	return m
}

// junctionFidelity returns the fidelity of one overhang within the
// full set it will be ligated alongside: the fraction of its ligation
// events expected to hit its own reverse complement rather than any
// other overhang in the pot. Every set member contributes both its
// own strand and its complement to the denominator
func (m *fidelityModel) junctionFidelity(o string, set []string) float64 {
	if m.profile == nil || !m.profile.Has(o) {
		return m.fallback(o)
	}

	onTarget := m.profile.Count(o, revComp(o))

	var total float64
	if m.legacy {
		total = m.rowSums[o]
	} else {
		for _, x := range set {
			total += m.profile.Count(o, x) + m.profile.Count(o, revComp(x))
		}
	}

	if total == 0 {
		return m.fallback(o)
	}
	return onTarget / total
}

// setFidelity returns the fidelity of a whole overhang set under the
// junction independence assumption: every member ligates on its own, so
// the set fidelity is the plain product. Simultaneous competition
// between three or more overhangs is not modeled, which reads slightly
// high for large sets. Nothing else encodes the assumption, replacing
// this product replaces the model
func (m *fidelityModel) setFidelity(set []string) float64 {
	fidelity := 1.0
	for _, o := range set {
		fidelity *= m.junctionFidelity(o, set)
	}
	return fidelity
}

// fallback returns the static fidelity estimate for an overhang
func (m *fidelityModel) fallback(o string) float64 {
	if f, ok := fallbackFidelity[o]; ok {
		return f
	}
	return m.fallbackDefault
}

// hasData returns whether the overhang can be scored at all. An
// overhang the profile never saw ligate to its own partner can't,
// the scanner drops such positions. Without a profile every overhang
// goes through the static fallback instead
func (m *fidelityModel) hasData(o string) bool {
	if m.profile == nil {
		return true
	}
	return m.profile.Count(o, revComp(o)) > 0
}

// efficiency returns the relative ligation efficiency of an overhang,
// 1.0 for an unremarkable one. Palindromes never get here, the scanner
// and pool parsers drop them first. A poorOverhangs entry multiplies in
// at full weight and dampens whichever composition factors also match,
// so one flaw is not charged twice
func (m *fidelityModel) efficiency(o string) float64 {
	eff, strength := 1.0, 1.0
	if f, ok := poorOverhangs[o]; ok {
		eff, strength = f, poorPatternStrength
	}

	soft := func(f float64) float64 { return 1 - strength*(1-f) }
	if isHomopolymer(o) {
		eff *= soft(homopolymerEfficiency)
	}
	if gc := gcCount(o); gc == len(o) {
		eff *= soft(highGCEfficiency)
	} else if gc == 0 {
		eff *= soft(lowGCEfficiency)
	}
	if hasTNNAPattern(o) {
		eff *= soft(tnnaEfficiency)
	}
	return eff
}
