package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI's settings. Values from a config file are overlaid on
// the defaults; command-line flags override both.
type Config struct {
	ModelPath string `yaml:"model"`
	// LabelsPath is optional; a missing file falls back to class_<i> labels.
	LabelsPath string `yaml:"labels"`
	TopK       int    `yaml:"top_k"`
	// Normalization overrides the model-name heuristic when set. One of
	// "imagenet", "symmetric", "unit".
	Normalization string `yaml:"normalization"`
	// OnnxLibraryPath points at the onnxruntime shared library; empty uses
	// the platform default search.
	OnnxLibraryPath string `yaml:"onnxruntime_library"`
	Verbose         bool   `yaml:"verbose"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		TopK: 5,
	}
}

// Load reads configuration from path. An empty path searches the default file
// names and falls back to Default when none exists; an explicit path that
// cannot be read is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range []string{"classify.yaml", "classify.yml"} {
			if data, err = os.ReadFile(name); err == nil {
				path = name
				break
			}
		}
		if err != nil {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
