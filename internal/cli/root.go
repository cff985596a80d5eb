// Package cli implements the salient command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "salient",
	Short: "Bounded working memory for AI coding agents",
	Long:  "Salient keeps a small, scored set of working memories for an agent session. Low-value entries get evicted as new ones arrive.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.salient/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rememberCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(touchCmd)
	rootCmd.AddCommand(evictCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(delegateCmd)
	rootCmd.AddCommand(shotCmd)
}
