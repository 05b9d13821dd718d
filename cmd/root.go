// Package cmd is for command line interactions with the hinge application
package cmd

import (
	"log"

	"github.com/hingebio/hinge/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfgFile is an optional settings file overriding the defaults
var cfgFile string

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "hinge",
	Short: `Design Golden Gate assembly junctions with high predicted ligation fidelity.
Split a target sequence at scored junction sites or pick compatible overhang sets`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hinge.yaml)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress and search effort")

	// Bind the parameters to viper
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig readies viper's defaults, file and env settings
func initConfig() {
	config.Setup(cfgFile)
}
