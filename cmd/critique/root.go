package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "critique",
	Short: "AI design critique for UI screenshots",
	Long: `critique sends a UI screenshot to the critique API and prints the issues
found, or checks which AI provider models the configured keys can reach.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(keycheckCmd)
	rootCmd.AddCommand(versionCmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
