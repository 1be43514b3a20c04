// Package runner orchestrates a remap invocation: loading documents, applying
// the rule set or ad-hoc query, encoding output and reporting results.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"remap/internal/config"
	"remap/internal/exit"
	"remap/internal/extractor"
	"remap/internal/formatter"
	"remap/internal/formatter/stdout"
	"remap/internal/mapper"
	"remap/internal/ratelimit"
	"remap/internal/results"
	"remap/internal/rules"
)

// Runner executes one remap invocation.
type Runner struct {
	config    *config.Config
	rules     []mapper.Rule
	formatter formatter.Formatter
	limiter   *ratelimit.Limiter
	stdin     io.Reader
	stdout    io.Writer
}

// New creates a runner from a validated configuration, loading the rule set
// up front so a malformed file is rejected before any document is touched.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	r := &Runner{
		config:    cfg,
		formatter: stdout.New(),
		limiter:   ratelimit.New(cfg.RateLimit),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}

	if cfg.RulesFile != "" {
		loaded, err := rules.LoadFile(cfg.RulesFile)
		if err != nil {
			return nil, exit.RulesErrorf("%s: %v\n", cfg.RulesFile, err)
		}
		r.rules = loaded
	}

	return r, nil
}

// Run executes the configured mode and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	switch {
	case r.config.Stream:
		return r.runStream(ctx)
	case r.config.Query != "":
		return r.runQuery()
	default:
		return r.runFiles()
	}
}

// runFiles applies the rule set to every input file and prints a summary.
func (r *Runner) runFiles() int {
	summary := results.NewSummary(len(r.config.InputFiles))
	start := time.Now()

	for _, file := range r.config.InputFiles {
		builder := results.NewFileResultBuilder(file)
		fileStart := time.Now()

		if err := r.mapFile(file); err != nil {
			builder.WithError(err)
		} else {
			builder.WithRuleCount(len(r.rules))
		}

		summary.Add(builder.WithDuration(time.Since(fileStart)))
	}

	summary.SetTotalDuration(time.Since(start))

	if err := r.formatter.Format(summary); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting summary: %v\n", err)
	}

	if summary.FailedFiles > 0 {
		return exit.CodeFailure
	}
	return exit.CodeOK
}

func (r *Runner) mapFile(path string) error {
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	var trace mapper.Trace
	if r.config.Debug {
		trace = r.traceRule
	}

	out, err := mapper.ApplyWithTrace(doc, r.rules, trace)
	if err != nil {
		return err
	}

	encoded, err := r.encode(out)
	if err != nil {
		return err
	}

	return r.writeOutput(encoded)
}

// runQuery evaluates the ad-hoc JSONPath expression against every input file.
func (r *Runner) runQuery() int {
	for _, file := range r.config.InputFiles {
		doc, err := loadDocument(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			return exit.CodeFailure
		}

		matches, err := extractor.Query(doc, r.config.Query)
		if errors.Is(err, extractor.ErrNotFound) {
			matches = []any{}
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			return exit.CodeFailure
		}

		encoded, err := r.encode(matches)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			return exit.CodeFailure
		}

		if err := r.writeOutput(encoded); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			return exit.CodeFailure
		}
	}

	return exit.CodeOK
}

// loadDocument decodes a JSON or YAML document into the map[string]any /
// []any shapes the engine operates on. YAML is a JSON superset, so one
// decoder covers both.
func loadDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return doc, nil
}

func (r *Runner) encode(v any) ([]byte, error) {
	if r.config.Format == config.FormatYAML {
		return yaml.Marshal(v)
	}

	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}

func (r *Runner) writeOutput(encoded []byte) error {
	if r.config.OutputFile != "" {
		return os.WriteFile(r.config.OutputFile, encoded, 0o644)
	}

	_, err := r.stdout.Write(encoded)
	return err
}
