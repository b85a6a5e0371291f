package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the datocms-mcp version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version of the datocms-mcp binary.",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("datocms-mcp %s\n", Version)
	},
}
