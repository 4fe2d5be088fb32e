// Package discover builds the list of projects to analyze in a trace
// directory, either from a legend.json manifest or by filename convention.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hotspot/internal/logging"
)

// Project is one unit of work: a trace/types file pair, optionally labeled
// with the build configuration that produced it. Its identity is TracePath.
type Project struct {
	// ConfigPath is a human-readable label (usually the tsconfig-style path
	// recorded by the build). Empty for projects found by directory scan.
	ConfigPath string

	// TracePath is the trace input. Always set.
	TracePath string

	// TypesPath is the expected types-dump counterpart. Always set, but the
	// file itself may not exist; the executor checks at invocation time.
	TypesPath string
}

// LegendName is the manifest filename looked for at the root of a trace
// directory.
const LegendName = "legend.json"

// Discover returns the projects to analyze under dir. If a legend manifest is
// present and parses, it wins; otherwise the directory is scanned for the
// trace<suffix>.json naming convention. The set is fixed for the whole run.
func Discover(dir string) ([]Project, error) {
	legendPath := filepath.Join(dir, LegendName)
	if _, err := os.Stat(legendPath); err == nil {
		projects, err := readLegend(legendPath, dir)
		if err == nil {
			return projects, nil
		}
		// A bad legend is recoverable: fall back to scanning.
		logging.New("discover").Warn("legend unusable, scanning directory instead",
			"path", legendPath, "error", err)
	}
	return scan(dir)
}

// scan lists dir and pairs every trace<suffix>.json with its
// types<suffix>.json counterpart. The suffix may itself contain dots
// (trace.es2020.json). Missing types files are not an error here.
func scan(dir string) ([]Project, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read trace directory: %w", err)
	}

	var projects []Project
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		suffix, ok := traceSuffix(name)
		if !ok {
			continue
		}
		projects = append(projects, Project{
			TracePath: filepath.Join(dir, name),
			TypesPath: filepath.Join(dir, "types"+suffix+".json"),
		})
	}
	return projects, nil
}

// traceSuffix returns the part between "trace" and ".json" when name follows
// the convention, reporting whether it matched.
func traceSuffix(name string) (string, bool) {
	if !strings.HasPrefix(name, "trace") || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	return name[len("trace") : len(name)-len(".json")], true
}
