package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/datocms-mcp/internal/config"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify datocms-mcp configuration",
	Long: `View and modify datocms-mcp configuration.

datocms-mcp reads configuration from .datocms-mcp.yaml in the current
directory. A global config at ~/.config/datocms-mcp/config.yaml provides
defaults; repo-level settings override it, and --api-token/--environment/
etc. or the DATOCMS_API_TOKEN/DATOCMS_ENVIRONMENT/DATOCMS_BASE_URL
environment variables override both.

Note: config set does a YAML round-trip and will not preserve comments.
If you need to keep comments, edit the file directly.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by key.

Examples:
  datocms-mcp config get package_manager
  datocms-mcp config get exec_timeout
  datocms-mcp config get --global log_level`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, or string.
By default, writes to .datocms-mcp.yaml in the current directory.
Use --global to write to ~/.config/datocms-mcp/config.yaml.

Examples:
  datocms-mcp config set package_manager pnpm
  datocms-mcp config set max_output_bytes 16384
  datocms-mcp config set --global log_level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes from
the repo config (.datocms-mcp.yaml) or global config
(~/.config/datocms-mcp/config.yaml). Repo values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/datocms-mcp/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/datocms-mcp/config.yaml)")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

// resetConfigFlags resets config command flags for testing.
func resetConfigFlags() {
	configGlobal = false
	if f := configGetCmd.Flags().Lookup("global"); f != nil {
		_ = f.Value.Set("false")
	}
	if f := configSetCmd.Flags().Lookup("global"); f != nil {
		_ = f.Value.Set("false")
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]

	var cfg *config.Config
	if configGlobal {
		var err error
		cfg, err = config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
	} else {
		repoCfg, err := config.Load(config.FileName)
		if err != nil {
			return fmt.Errorf("loading repo config: %w", err)
		}
		globalCfg, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		cfg = mergeFileConfigs(globalCfg, repoCfg)
	}

	val, err := config.GetValue(cfg, keyPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath, rawValue := args[0], args[1]

	if err := config.ValidateKeyPath(keyPath); err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}

	targetPath := filepath.Join(".", config.FileName)
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	current, err := config.Load(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	data, err := configToMap(current)
	if err != nil {
		return err
	}

	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}

	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return exitError(ExitConfigError, "%v", err)
	}

	if configGlobal {
		if err := os.MkdirAll(config.GlobalConfigDir(), 0o700); err != nil {
			return fmt.Errorf("creating global config dir: %w", err)
		}
	}
	f, err := os.Create(targetPath) //nolint:gosec // CLI-driven, path is the config file or --global path
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer f.Close() //nolint:errcheck // best-effort close after Write's own error is checked
	if err := config.Write(f, &validCfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, rawValue)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	repoCfg, err := config.Load(config.FileName)
	if err != nil {
		return fmt.Errorf("loading repo config: %w", err)
	}

	globalMap, err := configToMap(globalCfg)
	if err != nil {
		return err
	}
	repoMap, err := configToMap(repoCfg)
	if err != nil {
		return err
	}

	type entry struct {
		value  any
		source string
	}
	seen := make(map[string]entry)
	for k, v := range globalMap {
		seen[k] = entry{value: v, source: "global"}
	}
	for k, v := range repoMap {
		seen[k] = entry{value: v, source: "repo"}
	}

	if len(seen) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'datocms-mcp config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	repoColor := color.New(color.FgGreen)

	for _, k := range keys {
		e := seen[k]
		var label string
		if e.source == "global" {
			label = globalColor.Sprintf("(global)")
		} else {
			label = repoColor.Sprintf("(repo)")
		}
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, label)
	}
	return nil
}

// configToMap converts cfg to a flat map via a YAML round-trip, omitting
// zero-valued fields (they carry omitempty tags).
func configToMap(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
