package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hotspot/internal/batch"
	"hotspot/internal/classify"
	"hotspot/internal/config"
	"hotspot/internal/discover"
	"hotspot/internal/report"
)

var scanFlags struct {
	analyzer    string
	configPath  string
	concurrency int

	// Analyzer options, forwarded unchanged to every invocation.
	forceMillis float64
	skipMillis  float64
	expandTypes bool
}

var scanCmd = &cobra.Command{
	Use:   "scan <trace-dir>",
	Short: "Analyze every trace/types pair in a directory and rank the findings",
	Long: `Scan looks for a legend.json manifest in the trace directory (falling back
to the trace<suffix>.json naming convention), runs the analyzer once per
project, and prints highlights by descending severity.

Exit status: 0 when highlights were found, 1 when every project came back
quiet, 2 when anything failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringVar(&scanFlags.analyzer, "analyzer", "", "Analyzer executable (default: bin/"+analyzerName+", then $PATH)")
	f.StringVar(&scanFlags.configPath, "config", "", "Defaults file (YAML or JSON)")
	f.IntVar(&scanFlags.concurrency, "concurrency", 0, "Max concurrent analyzer processes (0 = one per CPU)")
	f.Float64Var(&scanFlags.forceMillis, "force-millis", 500, "Forwarded: always report checks at least this slow")
	f.Float64Var(&scanFlags.skipMillis, "skip-millis", 100, "Forwarded: ignore checks faster than this")
	f.BoolVar(&scanFlags.expandTypes, "expand-types", true, "Forwarded: print expanded type names in findings")
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("trace directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	cfg := &config.Config{}
	if scanFlags.configPath != "" {
		cfg, err = config.LoadFromPath(scanFlags.configPath)
		if err != nil {
			return err
		}
	}

	analyzer := resolveAnalyzer(scanFlags.analyzer, cfg)
	if analyzer == "" {
		return fmt.Errorf("analyzer binary not found\n\n"+
			"Install %s on $PATH, build it into bin/, or point at it:\n"+
			"  hotspot scan --analyzer /path/to/%s %s", analyzerName, analyzerName, dir)
	}

	workers := scanFlags.concurrency
	if !cmd.Flags().Changed("concurrency") && cfg.Workers > 0 {
		workers = cfg.Workers
	}

	projects, err := discover.Discover(dir)
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Analyzer:  analyzer,
		ExtraArgs: forwardedArgs(cmd.Flags(), cfg),
		Workers:   workers,
	}
	results := runner.Run(cmd.Context(), projects)

	classified := classify.All(results)
	report.Render(cmd.OutOrStdout(), classified)
	exitStatus = report.ExitCode(classified)
	return nil
}
