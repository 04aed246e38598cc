// Package config loads the optional project file, solo.json. The file is
// JSON with comments and trailing commas allowed:
//
//	{
//		// emit ES2015 bindings
//		"declarationKind": "let",
//		"comments": true,
//	}
//
// Fields left out keep their defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode"

	"github.com/tailscale/hujson"

	"solo/pkg/compiler"
)

// FileName is the project file looked up next to the sources.
const FileName = "solo.json"

type Config struct {
	ModuleLoader    string `json:"moduleLoader"`
	DeclarationKind string `json:"declarationKind"`
	Comments        bool   `json:"comments"`
	Locations       bool   `json:"locations"`
	UseStrict       bool   `json:"useStrict"`

	// Extension selects the files watch mode recompiles.
	Extension string `json:"extension"`
	// Indent is the JSON indentation of written programs.
	Indent string `json:"indent"`
}

func Default() Config {
	opts := compiler.DefaultOptions()
	return Config{
		ModuleLoader:    opts.ModuleLoader,
		DeclarationKind: opts.DeclarationKind,
		Comments:        opts.Comments,
		Locations:       opts.Locations,
		UseStrict:       true,
		Extension:       ".sl",
		Indent:          "  ",
	}
}

// Parse decodes a project file over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	std, err := hujson.Standardize(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load reads the project file at path. A missing file is not an error: the
// defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DeclarationKind {
	case "var", "let", "const":
	default:
		return fmt.Errorf("config: declarationKind must be var, let or const, got %q", c.DeclarationKind)
	}
	if c.ModuleLoader == "" {
		return fmt.Errorf("config: moduleLoader must not be empty")
	}
	if !isIdentifier(c.ModuleLoader) {
		return fmt.Errorf("config: moduleLoader %q is not an identifier", c.ModuleLoader)
	}
	if c.Extension == "" || c.Extension[0] != '.' {
		return fmt.Errorf("config: extension must start with a dot, got %q", c.Extension)
	}
	return nil
}

// Options returns the compiler settings of c.
func (c Config) Options() compiler.Options {
	return compiler.Options{
		ModuleLoader:    c.ModuleLoader,
		DeclarationKind: c.DeclarationKind,
		Comments:        c.Comments,
		Locations:       c.Locations,
		UseStrict:       c.UseStrict,
	}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return s != ""
}
