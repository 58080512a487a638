// Package project ties the pipeline together: it resolves the run
// configuration, discovers the Rust modules under the input directory,
// reads crate metadata, and drives extraction and generation, once or
// in watch mode.
package project

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
)

// Config is the resolved run configuration: where the Rust sources live
// and where the TypeScript tree goes.
type Config struct {
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
}

// LoadConfig resolves the configuration. A config file takes
// precedence; otherwise both path flags must be given.
func LoadConfig(configPath, inputPath, outputPath string) (*Config, error) {
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.Wrap(err, "could not read config file")
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "could not parse config file")
		}
		return &cfg, nil
	}
	if inputPath != "" && outputPath != "" {
		return &Config{InputPath: inputPath, OutputPath: outputPath}, nil
	}
	return nil, errors.New("either --config or both --input-path and --output-path must be provided")
}
