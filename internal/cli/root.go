package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "tjporte",
	Short:        "Firearm-permit desk for the Tribunal de Justiça Discord server",
	Long:         "Runs the TJ-Porte Discord bot: attorneys file permit requests, judges review them and record a ruling.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML (default ~/.tjporte/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
