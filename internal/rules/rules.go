// Package rules loads mapping rule sets from YAML or JSON files.
//
// A rule set is an object with a single recognized key:
//
//	pathMappings:
//	  - source: $.store.book[*].price.max()
//	    target: $.storeSummary.maxPrice
//
// YAML is a superset of JSON, so one decoder covers both encodings.
package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"remap/internal/mapper"
)

// ErrRules is the sentinel error for all rule-set loading failures.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrRules = errors.New("rules error")

type ruleSet struct {
	PathMappings []mapper.Rule `yaml:"pathMappings"`
}

// Load decodes and validates a rule set. Decode failures wrap ErrRules; shape
// violations wrap mapper.ErrInvalidRules. Either way the rule set is rejected
// as a whole before any document is touched.
func Load(r io.Reader) ([]mapper.Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRules, err)
	}

	var set ruleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRules, err)
	}

	if set.PathMappings == nil {
		return nil, fmt.Errorf("%w: missing 'pathMappings' list", ErrRules)
	}

	if err := mapper.Validate(set.PathMappings); err != nil {
		return nil, err
	}

	return set.PathMappings, nil
}

// LoadFile loads a rule set from a file path.
func LoadFile(path string) ([]mapper.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRules, err)
	}
	defer f.Close()

	return Load(f)
}
