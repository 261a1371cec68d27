// internal/config/config.go

// Package config resolves the tool's settings from three layers, lowest
// precedence first: an optional YAML file, ALNCONTAIN_* environment
// variables, then explicit command-line flags.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"alncontain-core/contain"
)

// Formats accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Unset marks a numeric threshold nobody has provided. The decision
// thresholds have no built-in defaults; a run that never sets them is a
// configuration error, not a silently-defaulted benchmark.
const Unset = -1

// Config is the full configuration surface of the containment engine.
type Config struct {
	MinIdentity float64 `yaml:"min_identity" envconfig:"ALNCONTAIN_MIN_IDENTITY"`
	MinAlnLen   int     `yaml:"min_alignment_length" envconfig:"ALNCONTAIN_MIN_ALIGNMENT_LENGTH"`
	Threshold   float64 `yaml:"containment_threshold" envconfig:"ALNCONTAIN_CONTAINMENT_THRESHOLD"`
	OnMalformed string  `yaml:"on_malformed_record" envconfig:"ALNCONTAIN_ON_MALFORMED_RECORD"`
	Output      string  `yaml:"output" envconfig:"ALNCONTAIN_OUTPUT"`
	Synthetic   bool    `yaml:"synthetic" envconfig:"ALNCONTAIN_SYNTHETIC"`
	Threads     int     `yaml:"threads" envconfig:"ALNCONTAIN_THREADS"`
}

// Default returns the layer-0 configuration.
func Default() Config {
	return Config{
		MinIdentity: Unset,
		MinAlnLen:   1,
		Threshold:   Unset,
		OnMalformed: "abort",
		Output:      FormatText,
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if non-empty), then the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// Validate checks everything the engine config cannot (policy and format
// strings), then delegates the threshold ranges.
func (c Config) Validate() error {
	if c.MinIdentity == Unset {
		return fmt.Errorf("min identity is required (flag --min-identity, env ALNCONTAIN_MIN_IDENTITY, or config file)")
	}
	if c.Threshold == Unset {
		return fmt.Errorf("containment threshold is required (flag --threshold, env ALNCONTAIN_CONTAINMENT_THRESHOLD, or config file)")
	}
	if _, err := contain.ParsePolicy(c.OnMalformed); err != nil {
		return err
	}
	switch c.Output {
	case FormatText, FormatJSON, FormatJSONL:
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s, or %s)", c.Output, FormatText, FormatJSON, FormatJSONL)
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads %d must be >= 0 (0 = all CPUs)", c.Threads)
	}
	return c.engine(false).Validate()
}

// Policy returns the parsed malformed-record policy. Call Validate first.
func (c Config) Policy() contain.Policy {
	p, _ := contain.ParsePolicy(c.OnMalformed)
	return p
}

// Engine translates the resolved configuration into the core engine's.
// Original rows are only retained when the text report needs them.
func (c Config) Engine() contain.Config {
	return c.engine(c.Output == FormatText && !c.Synthetic)
}

func (c Config) engine(keep bool) contain.Config {
	return contain.Config{
		MinIdentity: c.MinIdentity,
		MinAlnLen:   c.MinAlnLen,
		Threshold:   c.Threshold,
		KeepRecords: keep,
	}
}
