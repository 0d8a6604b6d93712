package cmd

import (
	"fmt"

	"github.com/gnolang/cfix/repair"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// initCmd: cfix init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with every rule at its default severity",
	Run: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			path = repair.DefaultConfigFile
		}
		if err := repair.WriteConfig(path, repair.DefaultConfig()); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}
