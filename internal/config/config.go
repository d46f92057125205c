// Package config loads and applies .aivss.yml configuration files for
// output, gating, and threat multiplier settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .aivss.yml configuration file.
type Config struct {
	// Format selects the default output format (terminal, json, markdown,
	// sarif).
	Format string `yaml:"format,omitempty"`
	// FailOn makes the CLI exit non-zero when any category reaches the
	// named qualitative rating or above.
	FailOn string `yaml:"fail_on,omitempty"`
	// Workers bounds the scoring pool size.
	Workers int `yaml:"workers,omitempty"`
	// ThreatMultipliers overrides or extends the builtin threat signal
	// table. Values must stay in [0, 1].
	ThreatMultipliers map[string]float64 `yaml:"threat_multipliers,omitempty"`
	// NoColor disables ANSI output in the terminal formatter.
	NoColor bool `yaml:"no_color,omitempty"`
}

// Load reads the .aivss.yml or .aivss.yaml config file from the given path.
// If path is a file, its parent directory is used. If no config file is
// found, it returns a zero Config (not an error).
func Load(dir string) (Config, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for _, name := range []string{".aivss.yml", ".aivss.yaml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > 1<<20 {
			return Config{}, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		return cfg, nil
	}
	return Config{}, nil
}
