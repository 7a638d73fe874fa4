package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/analogio/analog-cli/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write a config file with the default settings.

The file is written to --config, $ANALOG_CONFIG or
$XDG_CONFIG_HOME/analog/config.toml, in that order.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configInitCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFilePath()
	if err := config.InitFile(path, flagForce); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// configFilePath resolves the config file the same way config.Load does
func configFilePath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if env := os.Getenv(config.EnvPrefix + "_CONFIG"); env != "" {
		return env
	}
	return config.DefaultConfigPath()
}
