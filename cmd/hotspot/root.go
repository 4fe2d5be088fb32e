package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hotspot/internal/logging"
	"hotspot/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

// exitStatus is the run outcome recorded by the scan command: 0 highlights,
// 1 nothing found, 2 error. Fatal errors take the cobra error path instead.
var exitStatus = report.StatusHighlights

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "hotspot",
	Short: "Find compile-time hot spots across a directory of compiler traces",
	Long: "Hotspot discovers trace/types dump pairs in a directory, runs the\n" +
		"per-project analyzer on each with bounded parallelism, and ranks the findings.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(report.StatusError)
	}
	os.Exit(exitStatus)
}
