package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bzaczynski/microanalyst/internal/quantize"
	"github.com/bzaczynski/microanalyst/internal/thresholds"
)

// Config is the parsed configuration file.
type Config struct {
	Thresholds Thresholds `yaml:"thresholds"`
	Levels     Levels     `yaml:"levels"`
}

// Thresholds holds the source text of the threshold expressions.
type Thresholds struct {
	Starvation string `yaml:"starvation"`
	Infection  string `yaml:"infection"`
	Violation  string `yaml:"violation"`
}

// Levels holds the quantization levels.
type Levels struct {
	Control int `yaml:"control"`
	Other   int `yaml:"other"`
	Starved int `yaml:"starved"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	levels := quantize.DefaultLevels()
	return &Config{
		Thresholds: Thresholds{
			Starvation: thresholds.DefaultStarvation,
			Infection:  thresholds.DefaultInfection,
			Violation:  thresholds.DefaultViolation,
		},
		Levels: Levels{
			Control: levels.Control,
			Other:   levels.Other,
			Starved: levels.Starved,
		},
	}
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration YAML. Keys absent from data keep their
// default values. An empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	_, err := cfg.CompileThresholds()
	return err
}

// CompileThresholds compiles the configured expressions. An empty
// expression selects the default one.
func (c *Config) CompileThresholds() (*thresholds.Thresholds, error) {
	return thresholds.New(c.Thresholds.Starvation, c.Thresholds.Infection, c.Thresholds.Violation)
}

// QuantizeLevels returns the configured quantization levels.
func (c *Config) QuantizeLevels() quantize.Levels {
	return quantize.Levels{
		Control: c.Levels.Control,
		Other:   c.Levels.Other,
		Starved: c.Levels.Starved,
	}
}
