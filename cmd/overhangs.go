package cmd

import (
	"github.com/hingebio/hinge/internal/hinge"
	"github.com/spf13/cobra"
)

// overhangsCmd is for picking a compatible overhang set out of a flat
// pool, no target sequence involved
var overhangsCmd = &cobra.Command{
	Use:   "overhangs [overhang] ... [overhangN]",
	Short: "Pick a set of mutually compatible overhangs",
	Run:   hinge.OverhangsCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  hinge overhangs --count 10 --enzyme BsaI",
	Long: `
Pick the overhang set with the highest predicted one pot ligation
fidelity out of a pool. The pool is the command's arguments or the
--pool flag, or every non-palindromic overhang the enzyme can leave
when neither is given.`,
	Aliases: []string{"pool", "pick"},
}

// set flags
func init() {
	overhangsCmd.Flags().StringP("pool", "p", "", "comma or space separated overhangs to pick from")
	overhangsCmd.Flags().IntP("count", "k", 0, "number of overhangs to pick")
	overhangsCmd.Flags().StringP("enzyme", "e", "BsaI", enzymeHelp)
	overhangsCmd.Flags().StringP("out", "o", "", "output file name for the picked set <JSON>")

	// Mark required flags
	overhangsCmd.MarkFlagRequired("count")

	RootCmd.AddCommand(overhangsCmd)
}
