package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/parry/cache"
	"github.com/wesleyorama2/parry/internal/output"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the disk-backed response cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired and foreign cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, formatter, err := openStore(cmd)
		if err != nil {
			return err
		}
		store.PruneExpired()
		fmt.Print(formatter.FormatSuccess("pruned expired entries"))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cache entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, formatter, err := openStore(cmd)
		if err != nil {
			return err
		}
		store.Clear()
		fmt.Print(formatter.FormatSuccess("cache cleared"))
		return nil
	},
}

func openStore(cmd *cobra.Command) (*cache.Store, *output.Formatter, error) {
	noColor, _ := cmd.Flags().GetBool("no-color")
	dir, err := defaultCacheDir()
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.NewStore(dir, cache.WithLogger(logger(cmd)))
	if err != nil {
		return nil, nil, err
	}
	return store, output.NewFormatter(false, noColor), nil
}

func init() {
	cacheCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
