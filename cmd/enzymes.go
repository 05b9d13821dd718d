package cmd

import (
	"github.com/hingebio/hinge/internal/hinge"
	"github.com/spf13/cobra"
)

// enzymesCmd is for listing out all the Type IIS enzymes available for
// cutting junctions. Useful for if the user doesn't know which enzymes
// are available
var enzymesCmd = &cobra.Command{
	Use:   "enzymes",
	Short: "List the Type IIS enzymes junctions can be cut with",
	Run:   hinge.EnzymesCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Lists out all the enzymes in hinge by name along with their cut site,
the overhang length they leave and the ligation profile behind their
fidelity predictions.`,
	Aliases: []string{"enzyme"},
}

// set flags
func init() {
	RootCmd.AddCommand(enzymesCmd)
}
