package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kompisbot/kompis"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kompis",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kompis version %s\n", strings.TrimSpace(kompis.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
