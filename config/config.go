// Package config holds the small set of ambient settings that control
// cosmetic rendering and diagnostic verbosity: pretty-printer formatting
// knobs and how much source context a diagnostic shows. None of it
// affects the optimizer's semantic output.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the TOML-backed settings struct loaded by cmd/sparcopt.
type Config struct {
	Printer struct {
		BlankLineBeforeLabels bool   `toml:"blank_line_before_labels"`
		OperandSeparator      string `toml:"operand_separator"`
	} `toml:"printer"`

	Diagnostics struct {
		ContextLines int `toml:"context_lines"`
	} `toml:"diagnostics"`
}

// Default returns the configuration used when no settings file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Printer.BlankLineBeforeLabels = true
	cfg.Printer.OperandSeparator = ",\t"
	cfg.Diagnostics.ContextLines = 2
	return cfg
}

// Load reads a TOML settings file at path, merging it over Default(). A
// missing file is not an error — it just means Default() applies as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
