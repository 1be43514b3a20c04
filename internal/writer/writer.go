// Package writer places values into an output document at locations described
// by target path expressions, expanding a single wildcard positionally
// against a value list.
package writer

import (
	"errors"
	"fmt"

	"github.com/brunoga/deep"

	"remap/internal/aggregate"
	"remap/internal/pathexpr"
)

// ErrUnsupportedTarget is returned for target shapes the writer does not
// support: more than one wildcard, a wildcard paired with a non-list value,
// or an aggregate suffix on a write destination.
var ErrUnsupportedTarget = errors.New("unsupported target expression")

// Write returns a new document with value placed at the location described by
// target. The accumulator is never modified: callers keep a usable prior
// accumulator on the error path.
//
// A target without wildcards writes value at its concrete property/index
// chain, creating intermediate objects and arrays as needed. A target with
// exactly one wildcard requires a []any value and expands positionally: each
// element i is written with the wildcard replaced by index i. An empty list
// writes an empty array at the pre-wildcard prefix so the target key exists
// as [] rather than being absent.
func Write(accumulator any, target pathexpr.Path, value any) (any, error) {
	if target.Aggregate != aggregate.OpNone {
		return accumulator, fmt.Errorf("%w: %s: aggregate suffix on a write destination", ErrUnsupportedTarget, target)
	}

	wildcards := target.WildcardCount()
	if wildcards > 1 {
		return accumulator, fmt.Errorf("%w: %s: at most one wildcard is supported", ErrUnsupportedTarget, target)
	}

	var out any
	if accumulator != nil {
		copied, err := deep.Copy(accumulator)
		if err != nil {
			return accumulator, fmt.Errorf("copy accumulator: %w", err)
		}
		out = copied
	}

	if wildcards == 0 {
		return place(out, target.Segments, value)
	}

	list, ok := value.([]any)
	if !ok {
		return accumulator, fmt.Errorf("%w: %s: wildcard target requires a list value, got %T", ErrUnsupportedTarget, target, value)
	}

	wildcardAt := wildcardIndex(target.Segments)

	if len(list) == 0 {
		return place(out, target.Segments[:wildcardAt], []any{})
	}

	for i, element := range list {
		concrete := make([]pathexpr.Segment, len(target.Segments))
		copy(concrete, target.Segments)
		concrete[wildcardAt] = pathexpr.Index(i)

		next, err := place(out, concrete, element)
		if err != nil {
			return accumulator, err
		}
		out = next
	}

	return out, nil
}

func wildcardIndex(segments []pathexpr.Segment) int {
	for i, seg := range segments {
		if seg.Kind == pathexpr.KindWildcard {
			return i
		}
	}
	return -1
}

// place writes value at the concrete segment chain, replacing whatever is
// already there and materializing missing containers along the way. Arrays
// grow with nil padding when an index lies beyond their current length.
func place(node any, segments []pathexpr.Segment, value any) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}

	seg := segments[0]
	switch seg.Kind {
	case pathexpr.KindProperty:
		obj, ok := node.(map[string]any)
		if !ok {
			obj = map[string]any{}
		}
		child, err := place(obj[seg.Name], segments[1:], value)
		if err != nil {
			return nil, err
		}
		obj[seg.Name] = child
		return obj, nil

	case pathexpr.KindIndex:
		arr, _ := node.([]any)
		for len(arr) <= seg.Index {
			arr = append(arr, nil)
		}
		child, err := place(arr[seg.Index], segments[1:], value)
		if err != nil {
			return nil, err
		}
		arr[seg.Index] = child
		return arr, nil

	default:
		return nil, fmt.Errorf("%w: unexpected wildcard in concrete chain", ErrUnsupportedTarget)
	}
}
