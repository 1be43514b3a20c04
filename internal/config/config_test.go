package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"remap/internal/exit"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rulesFile := writeFile(t, dir, "rules.yaml", "pathMappings: []\n")
	inputFile := writeFile(t, dir, "input.json", "{}\n")

	cfg, exitResult := Parse([]string{"remap", "-rules", rulesFile, inputFile})
	if exitResult != nil {
		t.Fatalf("unexpected exit result: %+v", exitResult)
	}

	if cfg.RulesFile != rulesFile {
		t.Errorf("RulesFile = %q", cfg.RulesFile)
	}
	if len(cfg.InputFiles) != 1 || cfg.InputFiles[0] != inputFile {
		t.Errorf("InputFiles = %v", cfg.InputFiles)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want default json", cfg.Format)
	}
}

func TestParseDefaultsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rulesFile := writeFile(t, dir, "rules.yaml", "pathMappings: []\n")
	inputFile := writeFile(t, dir, "input.json", "{}\n")
	defaultsFile := writeFile(t, dir, "defaults.yaml", "format: yaml\ndebug: true\n")

	cfg, exitResult := Parse([]string{"remap", "-rules", rulesFile, "-defaults", defaultsFile, inputFile})
	if exitResult != nil {
		t.Fatalf("unexpected exit result: %+v", exitResult)
	}

	if cfg.Format != FormatYAML {
		t.Errorf("Format = %q, want yaml from defaults file", cfg.Format)
	}
	if !cfg.Debug {
		t.Error("Debug should be true from defaults file")
	}
}

func TestParseFlagsWinOverDefaultsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rulesFile := writeFile(t, dir, "rules.yaml", "pathMappings: []\n")
	inputFile := writeFile(t, dir, "input.json", "{}\n")
	defaultsFile := writeFile(t, dir, "defaults.yaml", "format: yaml\n")

	cfg, exitResult := Parse([]string{"remap", "-rules", rulesFile, "-defaults", defaultsFile, "-format", "json", inputFile})
	if exitResult != nil {
		t.Fatalf("unexpected exit result: %+v", exitResult)
	}

	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, explicit flag should win", cfg.Format)
	}
}

func TestParseUsageFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rulesFile := writeFile(t, dir, "rules.yaml", "pathMappings: []\n")
	inputFile := writeFile(t, dir, "input.json", "{}\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "no rules or query", args: []string{"remap", inputFile}},
		{name: "no input files", args: []string{"remap", "-rules", rulesFile}},
		{name: "rules and query", args: []string{"remap", "-rules", rulesFile, "-query", "$.a", inputFile}},
		{name: "missing rules file", args: []string{"remap", "-rules", filepath.Join(dir, "nope.yaml"), inputFile}},
		{name: "missing input file", args: []string{"remap", "-rules", rulesFile, filepath.Join(dir, "nope.json")}},
		{name: "unknown format", args: []string{"remap", "-rules", rulesFile, "-format", "xml", inputFile}},
		{name: "stream with input files", args: []string{"remap", "-rules", rulesFile, "-stream", inputFile}},
		{name: "stream with output", args: []string{"remap", "-rules", rulesFile, "-stream", "-output", "out.json"}},
		{name: "rate without stream", args: []string{"remap", "-rules", rulesFile, "-rate", "5", inputFile}},
		{name: "negative rate", args: []string{"remap", "-rules", rulesFile, "-stream", "-rate", "-2"}},
		{name: "output with many inputs", args: []string{"remap", "-rules", rulesFile, "-output", "out.json", inputFile, inputFile}},
		{name: "unknown flag", args: []string{"remap", "-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, exitResult := Parse(tt.args)
			if cfg != nil {
				t.Fatalf("expected nil config, got %+v", cfg)
			}
			if exitResult == nil || exitResult.ExitCode != exit.CodeUsage {
				t.Fatalf("exit result = %+v, want usage error", exitResult)
			}
		})
	}
}

func TestParseStreamMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rulesFile := writeFile(t, dir, "rules.yaml", "pathMappings: []\n")

	cfg, exitResult := Parse([]string{"remap", "-rules", rulesFile, "-stream", "-rate", "100"})
	if exitResult != nil {
		t.Fatalf("unexpected exit result: %+v", exitResult)
	}
	if !cfg.Stream || cfg.RateLimit != 100 {
		t.Fatalf("stream config not parsed: %+v", cfg)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	cfg := &Config{RulesFile: "", Query: "", InputFiles: []string{"x"}, Format: FormatJSON}
	if err := cfg.Validate(); !errors.Is(err, ErrNoRules) {
		t.Fatalf("error = %v, want ErrNoRules", err)
	}
}
