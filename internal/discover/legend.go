package discover

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// legendEntry is one record of the legend.json manifest written by the build
// that produced the trace directory.
type legendEntry struct {
	ConfigFilePath string `json:"configFilePath"`
	TracePath      string `json:"tracePath"`
	TypesPath      string `json:"typesPath"`
}

// readLegend parses a legend manifest and resolves every entry against dir.
// Only the base filename of each trace/types path is honored, so a manifest
// cannot point the run at files outside the trace directory.
func readLegend(path, dir string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read legend: %w", err)
	}

	var entries []legendEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse legend: %w", err)
	}

	projects := make([]Project, 0, len(entries))
	for i, e := range entries {
		if e.TracePath == "" || e.TypesPath == "" {
			return nil, fmt.Errorf("legend entry %d: missing tracePath or typesPath", i)
		}
		projects = append(projects, Project{
			ConfigPath: e.ConfigFilePath,
			TracePath:  filepath.Join(dir, filepath.Base(e.TracePath)),
			TypesPath:  filepath.Join(dir, filepath.Base(e.TypesPath)),
		})
	}
	return projects, nil
}
