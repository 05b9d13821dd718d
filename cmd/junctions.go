package cmd

import (
	"github.com/hingebio/hinge/internal/hinge"
	"github.com/hingebio/hinge/internal/thermo"
	"github.com/spf13/cobra"
)

var (
	enzymeHelp = `Type IIS enzyme cutting the junctions.
'hinge enzymes' prints a list of recognized enzymes.`

	strategyHelp = `optimizer picking the junction set: hybrid, greedy, bnb or anneal.
hybrid runs branch and bound on small designs and races greedy against
annealing on larger ones`
)

// junctionsCmd is for designing a junction set across a target sequence
var junctionsCmd = &cobra.Command{
	Use:   "junctions [sequence]",
	Short: "Design Golden Gate junctions across a target sequence",
	Run: func(cmd *cobra.Command, args []string) {
		hinge.JunctionsCmd(cmd, args, thermo.New())
	},
	SuggestionsMinimumDistance: 2,
	Example:                    "  hinge junctions --in target.fa --fragments 5 --enzyme BsaI",
	Long: `
Split a target sequence into fragments joined at scored Golden Gate
junctions. Each junction's overhang is judged on its predicted ligation
fidelity against the whole chosen set, its efficiency, the primer
windows it leaves behind and the risks it creates, and the optimizer
picks the set with the best composite score.

The sequence is either a path to a FASTA file or a raw sequence passed
directly as the argument.`,
	Aliases: []string{"design", "junction"},
}

// set flags
func init() {
	junctionsCmd.Flags().StringP("in", "i", "", "input file name of the target sequence <FASTA>")
	junctionsCmd.Flags().StringP("out", "o", "", "output file name for the junction set <JSON>")
	junctionsCmd.Flags().IntP("fragments", "f", 0, "number of fragments to split the target into")
	junctionsCmd.Flags().StringP("enzyme", "e", "BsaI", enzymeHelp)
	junctionsCmd.Flags().StringP("strategy", "s", "hybrid", strategyHelp)
	junctionsCmd.Flags().IntP("coding-start", "c", 0, "1-based start of the reading frame, 0 for noncoding")
	junctionsCmd.Flags().StringP("domains", "m", "", "comma separated 1-based spans to keep junctions out of, ex 120-450,800-900")
	junctionsCmd.Flags().StringP("within", "w", "", "comma separated 1-based spans junctions are restricted to")
	junctionsCmd.Flags().StringP("avoid", "x", "", "comma separated 1-based spans junctions are excluded from")
	junctionsCmd.Flags().BoolP("no-primers", "n", false, "skip primer window profiling")

	// Mark required flags
	junctionsCmd.MarkFlagRequired("fragments")

	RootCmd.AddCommand(junctionsCmd)
}
