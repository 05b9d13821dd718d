package hinge

import "strings"

// comp returns the Watson-Crick complement of a base. 'N' for anything
// that isn't an unambiguous base
func comp(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	}
	return 'N'
}

// revComp returns the reverse complement of a template sequence
func revComp(seq string) string {
	seq = strings.ToUpper(seq)

	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		rc[len(seq)-1-i] = comp(seq[i])
	}

	return string(rc)
}

// validBases returns whether the sequence is entirely unambiguous
// A/C/G/T. Overhangs with any other character are never considered
func validBases(seq string) bool {
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return len(seq) > 0
}

// isPalindrome returns whether an overhang is its own reverse complement.
// Palindromic overhangs anneal to themselves and are excluded outright,
// they're never scored and never selected
func isPalindrome(overhang string) bool {
	return overhang == revComp(overhang)
}

// isHomopolymer returns whether the overhang is a single repeated base
func isHomopolymer(overhang string) bool {
	if overhang == "" {
		return false
	}

	for i := 1; i < len(overhang); i++ {
		if overhang[i] != overhang[0] {
			return false
		}
	}
	return true
}

// gcCount returns the number of G and C bases in the sequence
func gcCount(seq string) (count int) {
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'G' || seq[i] == 'C' {
			count++
		}
	}
	return
}

// gcRatio returns the fraction of the sequence that is G or C
func gcRatio(seq string) float64 {
	if seq == "" {
		return 0
	}
	return float64(gcCount(seq)) / float64(len(seq))
}

// hasTNNAPattern returns whether the overhang starts with a T and ends
// with an A. Such overhangs ligate measurably worse than their ligation
// frequencies alone suggest
func hasTNNAPattern(overhang string) bool {
	if len(overhang) < 3 {
		return false
	}
	return overhang[0] == 'T' && overhang[len(overhang)-1] == 'A'
}

// wobblePair returns whether two annealed bases form a G:T wobble, the
// non-canonical pairing that still ligates often enough to matter
func wobblePair(a, b byte) bool {
	return (a == 'G' && b == 'T') || (a == 'T' && b == 'G')
}

// allOverhangs returns every overhang of the passed length in
// lexicographic order, 4^length in total
func allOverhangs(length int) []string {
	if length < 1 {
		return nil
	}

	overhangs := []string{""}
	for i := 0; i < length; i++ {
		next := make([]string, 0, len(overhangs)*4)
		for _, o := range overhangs {
			for _, b := range []string{"A", "C", "G", "T"} {
				next = append(next, o+b)
			}
		}
		overhangs = next
	}

	return overhangs
}
