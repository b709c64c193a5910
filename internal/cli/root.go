// Package cli implements the parry command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "parry",
	Short:   "A typed terminal HTTP client with a disk-backed response cache",
	Version: version,
	Long: `Parry is a terminal HTTP client built on a typed request/response
pipeline: declarative request descriptors, content-negotiated codecs,
status-driven error classification, and a disk cache that keeps
expiration metadata beside each entry.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// logger builds the CLI logger honoring the --debug flag.
func logger(cmd *cobra.Command) zerolog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(downloadCmd)
	RootCmd.AddCommand(cacheCmd)
}
