package main

import (
	"github.com/spf13/cobra"

	dcmlog "github.com/davetashner/datocms-mcp/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool

	apiTokenFlag       string
	environmentFlag    string
	baseURLFlag        string
	packageManagerFlag string
	execTimeoutFlag    string
	logLevelFlag       string
	maxOutputBytesFlag int
)

// rootCmd is the base command for datocms-mcp.
var rootCmd = &cobra.Command{
	Use:   "datocms-mcp",
	Short: "Run a Model Context Protocol server over the DatoCMS Content Management API",
	Long: `datocms-mcp exposes the DatoCMS Content Management API to AI agents over
the Model Context Protocol. Agents discover resources, actions, and method
signatures through the documentation tools, then author and run small
TypeScript scripts against a live project through the script and execute
tools, without a human hand-authoring each API call.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		dcmlog.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.PersistentFlags().StringVar(&apiTokenFlag, "api-token", "", "DatoCMS Content Management API token")
	rootCmd.PersistentFlags().StringVar(&environmentFlag, "environment", "", "DatoCMS environment (defaults to the project's primary environment)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "override the CMA base URL")
	rootCmd.PersistentFlags().StringVar(&packageManagerFlag, "package-manager", "", "package manager the script workspace uses (npm or pnpm)")
	rootCmd.PersistentFlags().StringVar(&execTimeoutFlag, "exec-timeout", "", "script execution timeout (e.g. 60s)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&maxOutputBytesFlag, "max-output-bytes", 0, "truncate tool result payloads past this many bytes")

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(versionCmd)
}
