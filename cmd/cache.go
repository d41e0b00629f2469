package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsembed/js2c/internal/cache"
	"github.com/jsembed/js2c/internal/ui/style"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the payload cache",
}

var cacheClearCmd = &cobra.Command{
	Use:          "clear",
	Short:        "Remove all cached payloads",
	RunE:         runCacheClear,
	SilenceUsage: true,
}

var cacheStatsCmd = &cobra.Command{
	Use:          "stats",
	Short:        "Show cache entry count and total size",
	RunE:         runCacheStats,
	SilenceUsage: true,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}

func openCache(cmd *cobra.Command) (*cache.Cache, error) {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, err
	}

	return cache.New(dir)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Clear(); err != nil {
		return err
	}

	fmt.Printf("%s Cache cleared\n", style.Success.Render(style.Check))

	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	c, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	count, size, err := c.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Entries: %d\nSize: %d bytes\n", count, size)

	return nil
}
