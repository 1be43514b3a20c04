// Package mapper applies ordered lists of source→target mapping rules to a
// document, folding each extracted value into an accumulating output document.
package mapper

import (
	"errors"
	"fmt"

	"remap/internal/aggregate"
	"remap/internal/engine"
	"remap/internal/pathexpr"
	"remap/internal/writer"
)

// Rule maps values matched by a source path expression onto a target path
// expression in the output document.
type Rule struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// Event describes one rule application, for debug tracing.
type Event struct {
	Index   int
	Rule    Rule
	Matches []engine.Match
	Op      aggregate.Op
	Value   any  // value handed to the writer, nil when skipped
	Written bool // false when the rule produced nothing to write
}

// Trace observes rule applications. It must not modify the event's contents.
type Trace func(Event)

// Apply folds the rule list left-to-right over an empty accumulator and
// returns the resulting output document. The source document is never
// modified. Later rules overwrite locations written by earlier ones.
//
// The rule list is validated up front; no writes happen if any rule is
// malformed.
func Apply(doc any, rules []Rule) (any, error) {
	return ApplyWithTrace(doc, rules, nil)
}

// ApplyWithTrace is Apply with a per-rule observer, used for debug output.
func ApplyWithTrace(doc any, rules []Rule, trace Trace) (any, error) {
	if err := Validate(rules); err != nil {
		return nil, err
	}

	var accumulator any

	for i, rule := range rules {
		// Validated above, so parse failures cannot occur here.
		source, err := pathexpr.Parse(rule.Source)
		if err != nil {
			return nil, fmt.Errorf("rule %d: source: %w", i+1, err)
		}
		target, err := pathexpr.Parse(rule.Target)
		if err != nil {
			return nil, fmt.Errorf("rule %d: target: %w", i+1, err)
		}

		matches := engine.Process(doc, source.Segments)
		value, write, err := extractValue(source, target, matches)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, rule.Source, err)
		}

		if trace != nil {
			trace(Event{
				Index:   i,
				Rule:    rule,
				Matches: matches,
				Op:      source.Aggregate,
				Value:   value,
				Written: write,
			})
		}

		if !write {
			continue
		}

		accumulator, err = writer.Write(accumulator, target, value)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, rule.Target, err)
		}
	}

	return accumulator, nil
}

// extractValue turns an ordered match list into the value a rule writes:
// the reduced value when the source carries an aggregate, the positional
// value list when the target fans out over a wildcard, the bare value for a
// single match, and the full list otherwise. A rule with nothing to say
// (no matches, or an undefined reduction over empty input) skips its write,
// except that a wildcard target always writes so empty extractions surface
// as [] instead of an absent key.
func extractValue(source, target pathexpr.Path, matches []engine.Match) (any, bool, error) {
	values := engine.Values(matches)

	if source.Aggregate != aggregate.OpNone {
		reduced, err := aggregate.Apply(source.Aggregate, values)
		if errors.Is(err, aggregate.ErrEmptyInput) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return reduced, true, nil
	}

	if target.WildcardCount() > 0 {
		return values, true, nil
	}

	switch len(values) {
	case 0:
		return nil, false, nil
	case 1:
		return values[0], true, nil
	default:
		return values, true, nil
	}
}
