package hinge

import (
	"fmt"
	"time"

	"github.com/hingebio/hinge/config"
	"github.com/spf13/cobra"
)

// OverhangsCmd takes a cobra command (with its flags) and runs Overhangs.
func OverhangsCmd(cmd *cobra.Command, args []string) {
	flags, conf := parsePoolFlags(cmd, args)
	Overhangs(flags, conf)
}

// Overhangs is for picking a mutually compatible overhang set out of a
// flat pool, no target sequence involved. An empty pool considers
// every non-palindromic overhang the enzyme can leave, one strand per
// reverse complement pair since both end up in the pot either way.
func Overhangs(flags *Flags, conf *config.Config) *Solution {
	start := time.Now()

	pool := flags.pool
	if len(pool) == 0 {
		enz, err := GetEnzyme(flags.enzyme)
		if err != nil {
			stderr.Fatalln(err)
		}

		for _, o := range allOverhangs(enz.OverhangLen) {
			if isPalindrome(o) || revComp(o) < o {
				continue
			}
			pool = append(pool, o)
		}
	}

	sol, err := DesignPool(pool, flags.count, flags.enzyme, nil, conf)
	if err != nil {
		stderr.Fatalln(err)
	}

	elapsed := time.Since(start)
	if flags.out != "" {
		if _, err = writeJSON(flags.out, "pool", flags.enzyme, 0, elapsed.Seconds(), sol); err != nil {
			stderr.Fatalln(err)
		}
	} else {
		printSolution(sol)
	}

	if conf.Verbose {
		printStats(sol)
		fmt.Printf("%s\n\n", elapsed)
	}

	return sol
}
