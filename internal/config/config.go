// Package config loads the optional defaults file for a scan: analyzer
// location, worker count, and analyzer option defaults. Command-line flags
// always override file values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Config is the defaults file schema. Analyzer option fields are pointers so
// an absent key is distinguishable from an explicit zero.
type Config struct {
	// Analyzer is the analyzer executable; empty means the usual lookup
	// (bin/ directory, then $PATH).
	Analyzer string `yaml:"analyzer" json:"analyzer"`

	// Workers bounds concurrent analyzer processes. Zero means one per CPU.
	Workers int `yaml:"workers" json:"workers"`

	ForceMillis *float64 `yaml:"force_millis" json:"forceMillis"`
	SkipMillis  *float64 `yaml:"skip_millis" json:"skipMillis"`
	ExpandTypes *bool    `yaml:"expand_types" json:"expandTypes"`
}

// LoadFromPath reads a config file (YAML or JSON) and returns the parsed
// Config. Format is detected by extension (.yaml/.yml/.json) or by content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes. ext is the file extension for a format
// hint; empty = detect from content.
func Load(data []byte, ext string) (*Config, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}

	useJSON := ext == ".json"
	if ext == "" {
		useJSON = strings.HasPrefix(strings.TrimSpace(string(data)), "{")
	}

	var c Config
	if useJSON {
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if c.Workers < 0 {
		return nil, fmt.Errorf("config: workers must not be negative (got %d)", c.Workers)
	}
	return &c, nil
}
