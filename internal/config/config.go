// Package config loads the pokerhistory HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete configuration
type Config struct {
	Parser ParserSettings `hcl:"parser,block"`
	Export ExportSettings `hcl:"export,block"`
}

// ParserSettings controls how archives are parsed
type ParserSettings struct {
	Workers  int      `hcl:"workers,optional"`
	Rooms    []string `hcl:"rooms,optional"`
	LogLevel string   `hcl:"log_level,optional"`
	FailFast bool     `hcl:"fail_fast,optional"`
}

// ExportSettings controls PHH export
type ExportSettings struct {
	Directory string `hcl:"directory,optional"`
	Format    string `hcl:"format,optional"`
}

const (
	FormatSession = "phhs"
	FormatHand    = "phh"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Parser: ParserSettings{
			Workers:  4,
			LogLevel: "info",
		},
		Export: ExportSettings{
			Directory: ".",
			Format:    FormatSession,
		},
	}
}

// Load reads an HCL configuration file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Both blocks are optional in the file; decode into a wrapper so gohcl
	// does not demand them.
	var raw struct {
		Parser *ParserSettings `hcl:"parser,block"`
		Export *ExportSettings `hcl:"export,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Parser != nil {
		config.Parser = *raw.Parser
	}
	if raw.Export != nil {
		config.Export = *raw.Export
	}
	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Parser.Workers == 0 {
		c.Parser.Workers = defaults.Parser.Workers
	}
	if c.Parser.LogLevel == "" {
		c.Parser.LogLevel = defaults.Parser.LogLevel
	}
	if c.Export.Directory == "" {
		c.Export.Directory = defaults.Export.Directory
	}
	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
}

// Validate checks value ranges. known lists the room names that can be
// selected in parser.rooms.
func (c *Config) Validate(known []string) error {
	if c.Parser.Workers < 1 || c.Parser.Workers > 256 {
		return fmt.Errorf("parser: workers must be between 1 and 256, got %d", c.Parser.Workers)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Parser.LogLevel)) {
		return fmt.Errorf("parser: invalid log_level %q", c.Parser.LogLevel)
	}
	for _, room := range c.Parser.Rooms {
		if !slices.ContainsFunc(known, func(k string) bool { return strings.EqualFold(k, room) }) {
			return fmt.Errorf("parser: unknown room %q", room)
		}
	}
	switch c.Export.Format {
	case FormatSession, FormatHand:
	default:
		return fmt.Errorf("export: invalid format %q", c.Export.Format)
	}
	return nil
}
