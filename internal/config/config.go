// Package config parses command line flags and optional defaults files into
// the remap tool configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/goccy/go-yaml"

	"remap/internal/exit"
)

const (
	// FormatJSON encodes output documents as indented JSON.
	FormatJSON = "json"
	// FormatYAML encodes output documents as YAML.
	FormatYAML = "yaml"
)

var (
	ErrNoArguments       = errors.New("no arguments provided")
	ErrNoRules           = errors.New("no rule set specified (use -rules or -query)")
	ErrNoInputFiles      = errors.New("no input files specified")
	ErrRulesAndQuery     = errors.New("-rules and -query are mutually exclusive")
	ErrStreamWithFiles   = errors.New("-stream reads stdin and takes no input files")
	ErrStreamWithOutput  = errors.New("-stream writes to stdout, -output is not supported")
	ErrRateWithoutStream = errors.New("-rate only applies to -stream mode")
	ErrOutputManyInputs  = errors.New("-output requires exactly one input file")
	ErrUnknownFormat     = errors.New("unknown output format")
	ErrNegativeRate      = errors.New("rate must be >= 0")
)

// Config represents the complete configuration for the remap tool.
type Config struct {
	// Mapping
	RulesFile string `yaml:"rules"`
	Query     string `yaml:"-"`

	// Input/output
	InputFiles []string `yaml:"-"`
	OutputFile string   `yaml:"output"`
	Format     string   `yaml:"format"`

	// Modes
	Debug     bool    `yaml:"debug"`
	Stream    bool    `yaml:"stream"`
	RateLimit float64 `yaml:"rate"` // documents per second in stream mode (0 = unlimited)

	// DefaultsFile is a YAML file whose values fill flags left at their zero
	// value. Flags always win over the file.
	DefaultsFile string `yaml:"-"`
}

// Parse builds a Config from command line arguments. It returns a non-nil
// exit result when parsing or validation fails, or when the caller asked for
// help.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("%v\n", ErrNoArguments)
	}

	cfg := &Config{}

	var usage strings.Builder
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(&usage)

	fs.StringVar(&cfg.RulesFile, "rules", "", "rule set file with pathMappings (YAML or JSON)")
	fs.StringVar(&cfg.Query, "query", "", "ad-hoc JSONPath expression instead of a rule set")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the result to a file instead of stdout")
	fs.StringVar(&cfg.Format, "format", "", "output format: json or yaml (default json)")
	fs.BoolVar(&cfg.Debug, "debug", false, "print a trace for every applied rule")
	fs.BoolVar(&cfg.Stream, "stream", false, "apply the rule set to each NDJSON line on stdin")
	fs.Float64Var(&cfg.RateLimit, "rate", 0, "max documents per second in stream mode (0 = unlimited)")
	fs.StringVar(&cfg.DefaultsFile, "defaults", "", "YAML file providing default flag values")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &exit.Result{Output: os.Stdout, ExitCode: exit.CodeOK, Message: usage.String()}
		}
		return nil, exit.Usagef("%s", usage.String())
	}

	cfg.InputFiles = fs.Args()

	if cfg.DefaultsFile != "" {
		if err := cfg.applyDefaultsFile(); err != nil {
			return nil, exit.Usagef("defaults file: %v\n", err)
		}
	}

	if cfg.Format == "" {
		cfg.Format = FormatJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, exit.Usagef("%v\n", err)
	}

	return cfg, nil
}

// applyDefaultsFile overlays values from the defaults file onto flags left at
// their zero value. Explicit flags always take precedence.
func (c *Config) applyDefaultsFile() error {
	data, err := os.ReadFile(c.DefaultsFile)
	if err != nil {
		return err
	}

	var defaults Config
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return err
	}

	return mergo.Merge(c, defaults)
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.RulesFile != "" && c.Query != "" {
		return ErrRulesAndQuery
	}

	if c.Stream {
		if c.RulesFile == "" {
			return ErrNoRules
		}
		if len(c.InputFiles) > 0 {
			return ErrStreamWithFiles
		}
		if c.OutputFile != "" {
			return ErrStreamWithOutput
		}
	} else {
		if c.RulesFile == "" && c.Query == "" {
			return ErrNoRules
		}
		if len(c.InputFiles) == 0 {
			return ErrNoInputFiles
		}
		if c.RateLimit != 0 {
			return ErrRateWithoutStream
		}
		if c.OutputFile != "" && len(c.InputFiles) != 1 {
			return ErrOutputManyInputs
		}
	}

	if c.Format != FormatJSON && c.Format != FormatYAML {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}

	if c.RateLimit < 0 {
		return ErrNegativeRate
	}

	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("rule set file %s not found: %w", c.RulesFile, err)
		}
	}

	for _, file := range c.InputFiles {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}

	return nil
}
