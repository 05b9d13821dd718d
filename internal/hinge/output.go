package hinge

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"
)

// Output is a struct containing design results for the target.
type Output struct {
	// Target's name. In >example_CDS FASTA its "example_CDS"
	Target string `json:"target"`

	// Enzyme that cuts the junctions
	Enzyme string `json:"enzyme"`

	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Fragments requested of the target, 0 for pool picks
	Fragments int `json:"fragments,omitempty"`

	// Solution is the chosen junction set
	Solution *Solution `json:"solution"`
}

// writeJSON turns a solution into an Output object and writes it to the
// filename requested. An empty or "-" filename writes to stdout.
func writeJSON(
	filename,
	targetName,
	enzymeName string,
	fragments int,
	seconds float64,
	sol *Solution,
) (output []byte, err error) {
	// store save time, using same format as log.Println https://golang.org/pkg/log/#Println
	t := time.Now() // https://gobyexample.com/time-formatting-parsing
	time := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	out := Output{
		Time:      time,
		Target:    targetName,
		Enzyme:    enzymeName,
		Execution: seconds,
		Fragments: fragments,
		Solution:  sol,
	}

	output, err = json.MarshalIndent(out, "", "  ")
	if err != nil {
		return output, fmt.Errorf("failed to serialize output: %v", err)
	}

	if filename == "" || filename == "-" {
		fmt.Println(string(output))
		return output, nil
	}

	if err = os.WriteFile(filename, output, 0666); err != nil {
		return output, fmt.Errorf("failed to write the output: %v", err)
	}

	return output, nil
}

// printSolution logs a human readable summary of a junction set to
// stdout, risks and diagnostics included.
func printSolution(sol *Solution) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "junction\tposition\toverhang\trevComp\tfidelity\tefficiency\tscore\t\n")
	for i, j := range sol.Junctions {
		position := "-"
		if j.Start >= 0 {
			position = strconv.Itoa(j.Start + 1)
		}

		composite := 0.0
		if j.Score != nil {
			composite = j.Score.Composite
		}

		fmt.Fprintf(
			writer, "%d\t%s\t%s\t%s\t%.3f\t%.2f\t%.1f\n",
			i+1, position, j.Overhang, j.RevComp, j.Fidelity, j.Efficiency, composite,
		)
	}
	writer.Flush()

	fmt.Printf(
		"\nstrategy=%s fidelity=%.3f efficiency=%.2f composite=%.1f complete=%t\n",
		sol.Strategy, sol.Fidelity, sol.Efficiency, sol.Composite, sol.Complete,
	)

	for _, r := range sol.Risks {
		fmt.Printf(
			"risk (%s): %s anneals %s with %d wobble, freq %.3f\n",
			r.Tier, r.First, r.Second, r.Wobbles, r.Freq,
		)
	}

	for _, d := range sol.Diagnostics {
		stderr.Printf("region %d near %d: %s\n", d.Region+1, d.Ideal+1, d.Reason)
	}

	if sol.Infeasible != nil {
		stderr.Printf(
			"infeasible: %s. Try %d instead\n",
			sol.Infeasible.Reason, sol.Infeasible.SuggestedFragments,
		)
	}
}

// printStats logs search effort counters for a verbose run.
func printStats(sol *Solution) {
	s := sol.Stats
	if s == nil {
		return
	}

	if s.Nodes > 0 {
		fmt.Printf("nodes=%d pruned=%d maxDepth=%d\n", s.Nodes, s.Pruned, s.MaxDepth)
	}
	if s.Proposed > 0 {
		fmt.Printf("proposed=%d accepted=%d initialTemp=%.3f\n", s.Proposed, s.Accepted, s.InitialTemp)
	}
}

// printCandidates logs scanned candidates as a table, best first.
func printCandidates(candidates []*Candidate) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "position\toverhang\trevComp\tscore\toverhangScore\trisk\tnotes\t\n")
	for _, c := range candidates {
		if c.Score == nil {
			continue
		}

		notes := ""
		if len(c.Score.Notes) > 0 {
			notes = c.Score.Notes[0]
		}

		fmt.Fprintf(
			writer, "%d\t%s\t%s\t%.1f\t%.1f\t%.1f\t%s\n",
			c.Start+1, c.Overhang, revComp(c.Overhang), c.Score.Composite, c.Score.Overhang, c.Score.Risk, notes,
		)
	}
	writer.Flush()
}
