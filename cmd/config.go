package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd is for logging the active settings: defaults, the config
// file and HINGE_* environment overrides merged
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Log the active settings",
	Run: func(cmd *cobra.Command, args []string) {
		b, err := json.MarshalIndent(viper.AllSettings(), "", "  ")
		if err == nil {
			fmt.Println(string(b))
		}
	},
	SuggestionsMinimumDistance: 2,
	Long: `
Log every active setting as JSON after merging the defaults, the
config file (--config or $HOME/.hinge.yaml) and HINGE_* environment
variables. Any of them can be overridden in the config file using the
same keys.`,
	Aliases: []string{"settings"},
}

// set flags
func init() {
	RootCmd.AddCommand(configCmd)
}
