package cmd

import (
	"fmt"
	"os"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/robmorgan/metronome/cmd.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "metronome",
	Short: "A metronome for the terminal",
	Long: `A metronome for the terminal with beat dropping, tempo ramps, drones and
chord progressions.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); defaults to $METRONOME_LOG_LEVEL or info")
	rootCmd.PersistentFlags().Bool("debug", false, "keep logging while the interactive UI runs and print stack traces on errors")
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		debug, _ := rootCmd.PersistentFlags().GetBool("debug")
		if debug {
			fmt.Fprintln(os.Stderr, errors.PrintErrorWithStackTrace(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", errors.Unwrap(err))
		}
		os.Exit(1)
	}
}
