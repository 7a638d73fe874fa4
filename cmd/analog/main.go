package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/analogio/analog-cli/internal/api"
	"github.com/analogio/analog-cli/internal/config"
	"github.com/analogio/analog-cli/internal/logging"
	"github.com/analogio/analog-cli/internal/metrics"
	"github.com/analogio/analog-cli/internal/output"
)

var version = "0.1.0"

func main() {
	ctx, stop := output.SignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "analog",
	Short: "Is café Analog open?",
	Long: `analog shows whether café Analog is open right now and when it opens
during the week.

Features:
  - Live open/closed widgets that refresh on a schedule or on demand
  - This week's opening hours, refreshed with a keypress
  - One-shot status line with the next opening
  - Opening hours as text, JSON, YAML, TOML or an iCalendar feed

Quick Start:
  1. Launch TUI:            analog (or analog tui)
  2. Open right now?        analog status
  3. This week's hours:     analog hours
  4. Add to a calendar:     analog hours -o ics > analog.ics
  5. Write a config file:   analog config init`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig  string
	flagColor   string
	flagRawJSON bool
)

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(hoursCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)

	// Flags bound to configuration keys; names must match config.flagKeys
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/analog/config.toml)")
	pf.String("base-url", "", "Status service base URL")
	pf.Int("surfaces", 0, "Number of widgets shown at start (0-9)")
	pf.Duration("dwell", 0, "Minimum time a widget shows Refreshing")
	pf.Bool("no-cache", false, "Disable response caching")
	pf.String("state-dir", "", "Directory for the saved schedule and log")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Log file for the TUI (default <state-dir>/analog.log)")

	pf.StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	pf.BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
}

// loadConfig reads and validates the configuration for cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// newLogger creates the stderr logger used by one-shot commands
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.File)
}

// createClient creates an API client with common options. Cacheable
// responses use the file cache unless cached is false or caching is off.
func createClient(cfg *config.Config, log *zap.Logger, rec *metrics.Recorder, cached bool) (*api.Client, error) {
	opts := []api.ClientOption{
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.Retries, 0),
		api.WithUserAgent("analog-cli/" + version),
		api.WithLogger(log.Named("api")),
		api.WithMetrics(rec),
	}

	if cached && !cfg.Schedule.NoCache {
		opts = append(opts, api.WithDefaultCache(cfg.Schedule.CacheTTL))
	}

	return api.NewClient(opts...)
}

// requestBudget bounds one logical fetch: every attempt may run to its
// timeout and every retry may wait out its longest backoff.
func requestBudget(cfg *config.Config) time.Duration {
	attempts := cfg.API.Timeout * time.Duration(cfg.API.Retries+1)
	return attempts + api.MaxRetryWait(cfg.API.Retries, 0)
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

func printPrettyJSON(data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		fmt.Println(string(data))
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prettyJSON)
}
