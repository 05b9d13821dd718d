package hinge

import (
	"fmt"
	"sort"
	"time"

	"github.com/hingebio/hinge/config"
	"github.com/spf13/cobra"
)

// JunctionsCmd takes a cobra command (with its flags) and runs Junctions.
func JunctionsCmd(cmd *cobra.Command, args []string, oracle PrimerOracle) {
	flags, conf := parseDesignFlags(cmd, args, true)
	Junctions(flags, conf, oracle)
}

// Junctions is for running an end to end junction design against a target sequence.
func Junctions(flags *Flags, conf *config.Config, oracle PrimerOracle) *Solution {
	start := time.Now()

	name, sol, err := junctions(flags, conf, oracle)
	if err != nil {
		stderr.Fatalln(err)
	}

	// write the results to a file
	elapsed := time.Since(start)
	_, err = writeJSON(
		flags.out,
		name,
		flags.enzyme,
		flags.fragments,
		elapsed.Seconds(),
		sol,
	)
	if err != nil {
		stderr.Fatalln(err)
	}

	if conf.Verbose {
		printSolution(sol)
		printStats(sol)
		fmt.Printf("%s\n\n", elapsed)
	}

	return sol
}

// junctions designs a junction set for the target read from input.in.
//
// The goal is a set of overhangs that:
// 	1. ligate to their own partners at a high predicted fidelity
// 	2. avoid cross talk with every other overhang in the pot
// and, secondarily:
//	3. sit close to the ideal, evenly spaced junction positions
// 	4. leave well behaved primer annealing windows on both sides
//	5. keep the reading frame and annotated domains intact
//
// First scan the target for every viable overhang candidate, then
// group the candidates into one region per junction and score them.
//
// Then hand the regions to the requested optimizer, which picks one
// candidate per region maximizing the mean composite score without
// letting any two picks collide in the ligation pot
func junctions(input *Flags, conf *config.Config, oracle PrimerOracle) (name string, sol *Solution, err error) {
	p := inputParser{}
	name, seq, err := p.readSequence(input.in)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read target sequence from %s: %v", input.in, err)
	}

	if conf.Verbose {
		fmt.Printf("Designing %s\n", name)
	}

	if input.noPrimers {
		oracle = nil
	}

	sol, err = Design(Request{
		Seq:         seq,
		Fragments:   input.fragments,
		Enzyme:      input.enzyme,
		Strategy:    input.strategy,
		CodingStart: input.codingStart,
		Domains:     input.domains,
		Allowed:     input.allowed,
		Forbidden:   input.forbidden,
		Oracle:      oracle,
	}, conf)
	if err != nil {
		return "", nil, err
	}

	return name, sol, nil
}

// ScanCmd is for walking a sequence and listing its junction candidates.
func ScanCmd(cmd *cobra.Command, args []string, oracle PrimerOracle) {
	flags, conf := parseDesignFlags(cmd, args, false)

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		limit = 0
	}

	Scan(flags, conf, oracle, limit)
}

// Scan scores every junction candidate of a target and logs the best
// to stdout. A limit above zero truncates the table.
func Scan(flags *Flags, conf *config.Config, oracle PrimerOracle, limit int) []*Candidate {
	p := inputParser{}
	name, seq, err := p.readSequence(flags.in)
	if err != nil {
		stderr.Fatalln(err)
	}

	if flags.noPrimers {
		oracle = nil
	}

	candidates, err := ScanCandidates(seq, flags.enzyme, oracle, conf)
	if err != nil {
		stderr.Fatalln(err)
	}

	if len(candidates) == 0 {
		stderr.Fatalf("no junction candidates found in %s", name)
	}

	// sort so the best composites are first
	ranked := make([]*Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Composite > ranked[j].Score.Composite
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	printCandidates(ranked)

	return ranked
}
