package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change inicfg settings",
	Long: `Show or change ~/.config/inicfg/config.yaml.

Examples:
  inicfg config show
  inicfg config set-default prefix /opt
  inicfg config set-var ENV prod`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name> <value>",
	Short: "Set an interpolation default",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSetDefault,
}

var configSetVarCmd = &cobra.Command{
	Use:   "set-var <name> <value>",
	Short: "Set an include path variable",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSetVar,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetDefaultCmd, configSetVarCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(cfg)
	}
	return output.YAML(cfg)
}

func runConfigSetDefault(cmd *cobra.Command, args []string) error {
	return updateSettings("default", args[0], args[1], func(name, value string) error {
		cfg, err := deps.ConfigLoader.Load()
		if err != nil {
			return err
		}
		cfg.Defaults[name] = value
		return deps.ConfigLoader.Save(cfg)
	})
}

func runConfigSetVar(cmd *cobra.Command, args []string) error {
	return updateSettings("variable", args[0], args[1], func(name, value string) error {
		cfg, err := deps.ConfigLoader.Load()
		if err != nil {
			return err
		}
		cfg.Variables[name] = value
		return deps.ConfigLoader.Save(cfg)
	})
}

func updateSettings(kind, name, value string, apply func(name, value string) error) error {
	if err := validateName(kind, name); err != nil {
		return err
	}
	if err := apply(name, value); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "failed to save config", err)
	}
	return outputResult(map[string]interface{}{
		"success": true,
		"kind":    kind,
		"name":    name,
		"value":   value,
	}, "%s %s set to %q", kind, name, value)
}
