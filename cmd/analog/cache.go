package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/analogio/analog-cli/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached opening hours",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return sweepCache(cmd, (*cache.FileCache).Clear)
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cached responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return sweepCache(cmd, (*cache.FileCache).Cleanup)
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePruneCmd)
}

func sweepCache(cmd *cobra.Command, sweep func(*cache.FileCache) (int, error)) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fc, err := cache.NewFileCache(cache.DefaultCacheDir(), cfg.Schedule.CacheTTL)
	if err != nil {
		return err
	}
	n, err := sweep(fc)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached response(s)\n", n)
	return nil
}
