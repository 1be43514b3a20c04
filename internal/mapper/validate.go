package mapper

import (
	"errors"
	"fmt"
	"strings"

	"remap/internal/aggregate"
	"remap/internal/pathexpr"
)

// ErrInvalidRules is the sentinel error for rule-set shape violations. A rule
// set failing validation is rejected atomically, before any extraction or
// write occurs.
var ErrInvalidRules = errors.New("invalid rule set")

// Validate checks every rule's shape: non-empty source and target, parseable
// expressions, and target constraints (at most one wildcard, no aggregate
// suffix).
func Validate(rules []Rule) error {
	for index, rule := range rules {
		if err := validateRule(rule); err != nil {
			return fmt.Errorf("%w: rule %d: %w", ErrInvalidRules, index+1, err)
		}
	}

	return nil
}

func validateRule(rule Rule) error {
	if strings.TrimSpace(rule.Source) == "" {
		return errors.New("missing required 'source' expression")
	}
	if strings.TrimSpace(rule.Target) == "" {
		return errors.New("missing required 'target' expression")
	}

	if _, err := pathexpr.Parse(rule.Source); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	target, err := pathexpr.Parse(rule.Target)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	if target.Aggregate != aggregate.OpNone {
		return fmt.Errorf("target %q: aggregate suffix is not allowed on a write destination", rule.Target)
	}
	if target.WildcardCount() > 1 {
		return fmt.Errorf("target %q: at most one wildcard is supported", rule.Target)
	}

	return nil
}
