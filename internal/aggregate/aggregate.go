// Package aggregate implements the closed set of reductions that a path
// expression may request as a trailing suffix, e.g. "$.store.book[*].price.max()".
package aggregate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrEmptyInput is returned by reductions that are undefined over an empty
// value list (max, min, avg, first, last).
var ErrEmptyInput = errors.New("aggregate: empty input")

// ErrNotNumeric is returned when a numeric reduction encounters a value that
// cannot be coerced to a number.
var ErrNotNumeric = errors.New("aggregate: non-numeric value")

// ErrUnknownOp is returned when Apply is called with an operation outside the
// closed set.
var ErrUnknownOp = errors.New("aggregate: unknown operation")

// Op identifies one aggregate operation. The zero value OpNone means no
// aggregation was requested.
type Op string

const (
	OpNone    Op = ""
	OpMax     Op = "max"
	OpMin     Op = "min"
	OpSum     Op = "sum"
	OpAvg     Op = "avg"
	OpCount   Op = "count"
	OpFirst   Op = "first"
	OpLast    Op = "last"
	OpUnique  Op = "unique"
	OpSort    Op = "sort"
	OpReverse Op = "reverse"
)

var ops = map[string]Op{
	"max":     OpMax,
	"min":     OpMin,
	"sum":     OpSum,
	"avg":     OpAvg,
	"count":   OpCount,
	"first":   OpFirst,
	"last":    OpLast,
	"unique":  OpUnique,
	"sort":    OpSort,
	"reverse": OpReverse,
}

// FromString resolves an operation name against the closed set.
func FromString(name string) (Op, bool) {
	op, ok := ops[name]
	return op, ok
}

// Apply reduces the ordered value list with the given operation.
//
// All reductions are pure: the input slice is never modified, operations that
// reorder (sort, reverse) or filter (unique) return a fresh slice. Empty
// inputs reduce to 0 for sum and count and to ErrEmptyInput for max, min,
// avg, first and last.
func Apply(op Op, values []any) (any, error) {
	switch op {
	case OpMax:
		return extremum(values, func(cmp int) bool { return cmp > 0 })
	case OpMin:
		return extremum(values, func(cmp int) bool { return cmp < 0 })
	case OpSum:
		return sum(values)
	case OpAvg:
		if len(values) == 0 {
			return nil, ErrEmptyInput
		}
		total, err := sum(values)
		if err != nil {
			return nil, err
		}
		return total.(float64) / float64(len(values)), nil
	case OpCount:
		return len(values), nil
	case OpFirst:
		if len(values) == 0 {
			return nil, ErrEmptyInput
		}
		return values[0], nil
	case OpLast:
		if len(values) == 0 {
			return nil, ErrEmptyInput
		}
		return values[len(values)-1], nil
	case OpUnique:
		return unique(values), nil
	case OpSort:
		sorted := make([]any, len(values))
		copy(sorted, values)
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareValues(sorted[i], sorted[j]) < 0
		})
		return sorted, nil
	case OpReverse:
		reversed := make([]any, len(values))
		for i, v := range values {
			reversed[len(values)-1-i] = v
		}
		return reversed, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}

func extremum(values []any, better func(cmp int) bool) (any, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	best := values[0]
	for _, v := range values[1:] {
		if better(compareValues(v, best)) {
			best = v
		}
	}
	return best, nil
}

func sum(values []any) (any, error) {
	var total float64
	for _, v := range values {
		n, ok := toFloat64(v)
		if !ok {
			return nil, fmt.Errorf("%w: %v (%T)", ErrNotNumeric, v, v)
		}
		total += n
	}
	return total, nil
}

// unique preserves first-seen order while removing subsequent duplicates.
// Values may be unhashable containers, so equality is structural.
func unique(values []any) []any {
	result := make([]any, 0, len(values))
	for _, v := range values {
		seen := false
		for _, u := range result {
			if equalValues(u, v) {
				seen = true
				break
			}
		}
		if !seen {
			result = append(result, v)
		}
	}
	return result
}

// compareValues imposes the natural ordering used by max, min and sort:
// numbers compare numerically, strings lexically, and mixed types order as
// numbers < strings < everything else.
func compareValues(a, b any) int {
	na, aNum := toFloat64(a)
	nb, bNum := toFloat64(b)

	switch {
	case aNum && bNum:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	case aNum:
		return -1
	case bNum:
		return 1
	}

	sa, aStr := a.(string)
	sb, bStr := b.(string)
	switch {
	case aStr && bStr:
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		default:
			return 0
		}
	case aStr:
		return -1
	case bStr:
		return 1
	}

	return 0
}

func equalValues(a, b any) bool {
	na, aNum := toFloat64(a)
	nb, bNum := toFloat64(b)
	if aNum && bNum {
		return na == nb
	}
	return reflect.DeepEqual(a, b)
}

// toFloat64 coerces the numeric representations produced by the JSON and
// YAML decoders (json.Number, float64, int64, uint64, ...).
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
