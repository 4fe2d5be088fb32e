package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"

	"hotspot/internal/config"
)

// analyzerName is the conventional name of the per-project analyzer binary.
const analyzerName = "hotspot-analyze"

// resolveAnalyzer picks the analyzer executable: the --analyzer flag wins,
// then the config file, then the usual lookup. Returns "" when nothing is
// found.
func resolveAnalyzer(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Analyzer != "" {
		return cfg.Analyzer
	}
	return findAnalyzerBinary()
}

func findAnalyzerBinary() string {
	candidates := []string{
		filepath.Join("bin", analyzerName),
		analyzerName,
	}
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
	}
	return ""
}

// forwardedArgs assembles the analyzer options passed through to every
// invocation: every option the user set on the command line, plus config-file
// defaults for options the user left alone. Flag syntax is preserved as
// --name=value so the analyzer sees the same surface this tool exposes.
func forwardedArgs(f *pflag.FlagSet, cfg *config.Config) []string {
	var args []string

	add := func(name, value string) {
		args = append(args, "--"+name+"="+value)
	}
	float := func(name string, fileValue *float64) {
		if f.Changed(name) {
			add(name, f.Lookup(name).Value.String())
		} else if fileValue != nil {
			add(name, strconv.FormatFloat(*fileValue, 'f', -1, 64))
		}
	}

	float("force-millis", cfg.ForceMillis)
	float("skip-millis", cfg.SkipMillis)
	if f.Changed("expand-types") {
		add("expand-types", f.Lookup("expand-types").Value.String())
	} else if cfg.ExpandTypes != nil {
		add("expand-types", fmt.Sprintf("%t", *cfg.ExpandTypes))
	}

	return args
}
