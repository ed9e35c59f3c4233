// Command nesgo is the command-line entry point for the emulator: run
// a ROM with the SDL2 front end or headless, dump a running system's
// internal state frame by frame, or inspect a ROM's header and mapper
// layout without running it.
package main

import (
	"fmt"
	"os"

	"github.com/kessler-vale/nesgo/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logFile  string
)

func main() {
	root := &cobra.Command{
		Use:   "nesgo",
		Short: "A NES emulator",
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (empty for stderr)")

	root.AddCommand(newRunCommand())
	root.AddCommand(newDebugCommand())
	root.AddCommand(newInspectCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildLogger() *logging.Logger {
	log, err := logging.New(logLevel, logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", logLevel, err)
		os.Exit(1)
	}
	return log
}
