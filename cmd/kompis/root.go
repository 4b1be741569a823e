package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kompis",
	Short: "Kompis is a conversational guide for newcomers to Sweden",
	Long: `Kompis drives multi-step chat conversations over a declarative node
graph: topic prediction, guided information flows and postal code
lookups, delivered through the Telegram Bot API or a local shell.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the TOML configuration file")
}
