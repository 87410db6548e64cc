package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/qresp/am"
	"github.com/teranos/qresp/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage qresp configuration",
	Long: `am — Manage qresp configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (QRESP_* prefix, e.g. QRESP_PUMP_PRODUCERS)
3. Project config (./am.toml, searched upwards)
4. User config (~/.qresp/am.toml)
5. System config (/etc/qresp/am.toml)
6. Default values

Examples:
  qresp am show                 # Show merged configuration as TOML
  qresp am show --format yaml   # Show it as YAML
  qresp am get pump.producers   # Get one merged value
  qresp am where                # List the files that were checked
  qresp am init                 # Write defaults to ~/.qresp/am.toml`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a merged configuration value using dot notation (e.g. pump.producers, journal.path)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runAmWhere,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAmInit,
}

var (
	configFormat string
	initForce    bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	amInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amWhereCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	return writeConfig(cmd.OutOrStdout(), cfg, configFormat)
}

func writeConfig(w io.Writer, cfg *am.Config, format string) error {
	switch format {
	case "json":
		return writeJSON(w, cfg)
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		_, err = fmt.Fprintf(w, "# qresp configuration\n%s", data)
		return err
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		_, err = fmt.Fprintf(w, "# qresp configuration\n%s", data)
		return err
	}
	return errors.WithHint(
		errors.Newf("unsupported format: %s", format),
		"supported formats: toml, json, yaml",
	)
}

func runAmGet(cmd *cobra.Command, args []string) error {
	v := am.GetViper()
	if !v.IsSet(args[0]) {
		return errors.WithHint(
			errors.NewNotFoundError("configuration key %q", args[0]),
			"run 'qresp am show' to list every key",
		)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), v.Get(args[0]))
	return err
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, path := range am.ConfigPaths() {
		mark := pterm.Gray("missing")
		if _, err := os.Stat(path); err == nil {
			mark = pterm.LightGreen("found")
		}
		fmt.Fprintf(out, "  %-8s %s\n", mark, path)
	}
	fmt.Fprintf(out, "  %-8s %s_* environment variables\n", pterm.LightCyan("env"), am.EnvPrefix)
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.UserConfigPath()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.WithHint(errors.New("cannot locate home directory"), "pass an explicit path: qresp am init ./am.toml")
	}
	if err := am.WriteFile(path, am.Defaults(), initForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", pterm.LightGreen("✓"), path)
	return nil
}
