// Package config loads peggen's TOML configuration file, following the same
// struct-plus-FillDefaults-plus-Validate shape as the Config type in
// server/config.go: field defaults are filled in a dedicated pass rather
// than inline at the zero-value, and validity is checked separately so a
// caller can fill defaults and validate as two explicit steps.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// OutputMode names a shape of result for the start rule: an opaque parse
// result, or a typed AST root. It is parsed and validated as part of Config
// only; the emitter does not read it, and picks the entry shim's mode from the
// start rule's declared type.
type OutputMode string

const (
	OutputOpaque OutputMode = "opaque"
	OutputAST    OutputMode = "ast"
)

// ParseOutputMode parses a config string into an OutputMode.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(s) {
	case OutputOpaque:
		return OutputOpaque, nil
	case OutputAST:
		return OutputAST, nil
	default:
		return "", fmt.Errorf("output mode not one of 'opaque' or 'ast': %q", s)
	}
}

// Config is the full set of settings that control one generation run,
// loaded from a peggen.toml file and overridable by CLI flags.
type Config struct {
	// GrammarFile is the path to the grammar definition to load (see
	// internal/gramfile).
	GrammarFile string `toml:"grammar_file"`

	// PackageName is the Go package name the emitted source declares itself
	// a member of.
	PackageName string `toml:"package_name"`

	// OutputFile is the path the generated source is written to. Empty
	// means stdout.
	OutputFile string `toml:"output_file"`

	// Output names the shape of the start rule's result (see OutputMode). It
	// is validated but not passed to the generator.
	Output OutputMode `toml:"output"`

	// DumpIR, when set, is a path to write a binary snapshot of the
	// expanded grammar to after generation completes (internal/irsnapshot).
	DumpIR string `toml:"dump_ir"`
}

// FillDefaults returns a copy of cfg with unset fields replaced by their
// defaults.
func (cfg Config) FillDefaults() Config {
	newCfg := cfg

	if newCfg.GrammarFile == "" {
		newCfg.GrammarFile = "grammar.json"
	}
	if newCfg.PackageName == "" {
		newCfg.PackageName = "parser"
	}
	if newCfg.Output == "" {
		newCfg.Output = OutputOpaque
	}

	return newCfg
}

// Validate returns an error if cfg has invalid or missing required field
// values. Call FillDefaults first if defaults are intended to be used.
func (cfg Config) Validate() error {
	if cfg.GrammarFile == "" {
		return fmt.Errorf("grammar_file: must be set")
	}
	if cfg.PackageName == "" {
		return fmt.Errorf("package_name: must be set")
	}
	switch cfg.Output {
	case OutputOpaque, OutputAST:
		// valid
	default:
		return fmt.Errorf("output: unknown mode %q", cfg.Output)
	}
	return nil
}

// Load reads and parses the TOML configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	var cfg Config
	if tomlErr := toml.Unmarshal(data, &cfg); tomlErr != nil {
		return Config{}, fmt.Errorf("%q: parsing TOML: %w", path, tomlErr)
	}

	return cfg, nil
}
