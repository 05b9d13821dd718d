package cmd

import (
	"github.com/hingebio/hinge/internal/hinge"
	"github.com/hingebio/hinge/internal/thermo"
	"github.com/spf13/cobra"
)

// scanCmd is for listing every junction candidate of a target, best first
var scanCmd = &cobra.Command{
	Use:   "scan [sequence]",
	Short: "Score every junction candidate in a target sequence",
	Run: func(cmd *cobra.Command, args []string) {
		hinge.ScanCmd(cmd, args, thermo.New())
	},
	SuggestionsMinimumDistance: 2,
	Example:                    "  hinge scan --in target.fa --enzyme BsaI --limit 25",
	Long: `
Walk a target sequence and log every viable junction candidate with its
composite score breakdown, without committing to a fragment count.
Useful for eyeballing where the well behaved junction sites sit before
a full design.`,
}

// set flags
func init() {
	scanCmd.Flags().StringP("in", "i", "", "input file name of the target sequence <FASTA>")
	scanCmd.Flags().StringP("enzyme", "e", "BsaI", enzymeHelp)
	scanCmd.Flags().BoolP("no-primers", "n", false, "skip primer window profiling")
	scanCmd.Flags().IntP("limit", "l", 25, "log at most this many candidates, 0 for all")

	RootCmd.AddCommand(scanCmd)
}
