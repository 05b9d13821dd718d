package hinge

import (
	"math"
	"sort"
)

// Wobble risk tiers, worst first
const (
	WobbleTierCritical = "critical"
	WobbleTierHigh     = "high"
	WobbleTierMedium   = "medium"
)

// WobbleRisk is a predicted mispairing between two overhang strands in
// the same ligation pot, driven by G:T wobble pairs. Wobble stabilized
// duplexes ligate at rates the mismatch heavy corner of a ligation
// profile understates, so they're flagged separately
type WobbleRisk struct {
	// First and Second are the two annealing strands, 5' to 3'
	First  string `json:"first"`
	Second string `json:"second"`

	// Matches is the count of paired positions, Watson-Crick or wobble
	Matches int `json:"matches"`

	// Wobbles is the count of G:T wobble pairs among the matches
	Wobbles int `json:"wobbles"`

	// Tier is critical, high or medium
	Tier string `json:"tier"`

	// Freq is the expected mis-ligation frequency relative to a
	// perfectly matched duplex
	Freq float64 `json:"freq"`
}

// duplexProfile aligns two strands as an annealed duplex, position i
// of the first against position len-1-i of the second. A position
// matches when its bases pair Watson-Crick or as a G:T wobble.
// matchedAt records the matched positions along the first strand,
// 5' to 3'
func duplexProfile(s1, s2 string) (matches, wobbles int, matchedAt []bool) {
	if len(s1) != len(s2) {
		return 0, 0, nil
	}

	n := len(s1)
	matchedAt = make([]bool, n)
	for i := 0; i < n; i++ {
		b1, b2 := s1[i], s2[n-1-i]
		if comp(b1) == b2 {
			matches++
			matchedAt[i] = true
		} else if wobblePair(b1, b2) {
			matches++
			wobbles++
			matchedAt[i] = true
		}
	}
	return
}

// wobbleTier ranks a flagged duplex. Paired end to end it's critical,
// the nearest thing to a true substrate. With frayed positions left,
// matches packed toward the aligned strand's 3' end still leave a
// sealable nick under the ligase, high. Everything else is medium
func wobbleTier(matches int, matchedAt []bool) string {
	if matches == len(matchedAt) {
		return WobbleTierCritical
	}

	half := len(matchedAt) / 2
	head, tail := 0, 0
	for i := 0; i < half; i++ {
		if matchedAt[i] {
			head++
		}
	}
	for i := len(matchedAt) - half; i < len(matchedAt); i++ {
		if matchedAt[i] {
			tail++
		}
	}
	if tail > head {
		return WobbleTierHigh
	}
	return WobbleTierMedium
}

// wobbleRisks flags strand pairs in a chosen overhang set able to
// anneal through G:T wobbles. Both strands of every junction end up in
// the pot, so each overhang contributes itself and its reverse
// complement. A pair is flagged when at least matchMin of its duplex
// positions pair, at least one of them a wobble. Duplexes are aligned
// along the lexically smaller strand, so tiers are deterministic
func wobbleRisks(set []string, matchMin int, weight float64) []*WobbleRisk {
	if len(set) == 0 {
		return nil
	}

	seen := map[string]bool{}
	strands := []string{}
	for _, o := range set {
		for _, s := range []string{o, revComp(o)} {
			if !seen[s] {
				seen[s] = true
				strands = append(strands, s)
			}
		}
	}
	sort.Strings(strands)

	var risks []*WobbleRisk
	for i := 0; i < len(strands); i++ {
		for j := i; j < len(strands); j++ {
			s1, s2 := strands[i], strands[j]
			if s2 == revComp(s1) {
				continue // the intended pairing
			}

			matches, wobbles, matchedAt := duplexProfile(s1, s2)
			if wobbles == 0 || matches < matchMin {
				continue
			}

			risks = append(risks, &WobbleRisk{
				First:   s1,
				Second:  s2,
				Matches: matches,
				Wobbles: wobbles,
				Tier:    wobbleTier(matches, matchedAt),
				Freq:    math.Pow(weight, float64(wobbles)),
			})
		}
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].Tier != risks[j].Tier {
			return tierRank(risks[i].Tier) < tierRank(risks[j].Tier)
		}
		if risks[i].Freq != risks[j].Freq {
			return risks[i].Freq > risks[j].Freq
		}
		if risks[i].First != risks[j].First {
			return risks[i].First < risks[j].First
		}
		return risks[i].Second < risks[j].Second
	})
	return risks
}

// tierRank orders tiers worst first
func tierRank(tier string) int {
	switch tier {
	case WobbleTierCritical:
		return 0
	case WobbleTierHigh:
		return 1
	}
	return 2
}
