// Package engine implements the path matching core: a breadth-first
// exploration of a document tree that yields every value satisfying a parsed
// segment sequence together with the concrete location it was found at.
package engine

import (
	"remap/internal/pathexpr"
)

// Match is one engine result: the subtree reached by consuming the full
// segment sequence, and the location it occupies in the source document.
type Match struct {
	Value    any
	Location Location
}

// searchState is one live branch of the exploration. States are immutable: a
// transition produces new states and never modifies an existing one, so
// sibling branches cannot contaminate each other's location context.
type searchState struct {
	consumed int      // segments consumed so far
	node     any      // subtree reached, shared read-only with the source document
	location Location // steps taken to reach node
}

// Process explores all ways the segment sequence can be satisfied against the
// document and returns the matches in a stable left-to-right, outer-to-inner
// order (wildcards fan out in element order).
//
// Documents are the decoded JSON/YAML shapes: map[string]any for objects and
// []any for arrays. Non-matches prune silently; an empty result is the normal
// representation of "no matches". The document is never modified.
//
// The exploration is level-synchronous: every state in a round has consumed
// the same number of segments, and the first round that produces fully
// consumed states terminates the search with exactly those states.
func Process(doc any, segments []pathexpr.Segment) []Match {
	if len(segments) == 0 {
		return nil
	}

	frontier := []searchState{{node: doc}}

	for len(frontier) > 0 {
		var accepting, continuing []searchState

		for _, state := range frontier {
			for _, next := range advance(state, segments[state.consumed]) {
				if next.consumed == len(segments) {
					accepting = append(accepting, next)
				} else {
					continuing = append(continuing, next)
				}
			}
		}

		if len(accepting) > 0 {
			matches := make([]Match, len(accepting))
			for i, state := range accepting {
				matches[i] = Match{Value: state.node, Location: state.location}
			}
			return matches
		}

		frontier = continuing
	}

	return nil
}

// advance applies one segment transition to a state, producing zero or more
// successors. A failed lookup contributes zero successors, never an error.
func advance(state searchState, seg pathexpr.Segment) []searchState {
	switch seg.Kind {
	case pathexpr.KindProperty:
		obj, ok := state.node.(map[string]any)
		if !ok {
			return nil
		}
		value, exists := obj[seg.Name]
		if !exists {
			return nil
		}
		return []searchState{{
			consumed: state.consumed + 1,
			node:     value,
			location: state.location.withName(seg.Name),
		}}

	case pathexpr.KindIndex:
		arr, ok := state.node.([]any)
		if !ok || seg.Index >= len(arr) {
			return nil
		}
		return []searchState{{
			consumed: state.consumed + 1,
			node:     arr[seg.Index],
			location: state.location.withIndex(seg.Index),
		}}

	case pathexpr.KindWildcard:
		arr, ok := state.node.([]any)
		if !ok {
			return nil
		}
		successors := make([]searchState, len(arr))
		for i, element := range arr {
			successors[i] = searchState{
				consumed: state.consumed + 1,
				node:     element,
				location: state.location.withIndex(i),
			}
		}
		return successors

	default:
		return nil
	}
}

// Values projects the matched values out of a match list, discarding
// locations. The result preserves match order.
func Values(matches []Match) []any {
	values := make([]any, len(matches))
	for i, m := range matches {
		values[i] = m.Value
	}
	return values
}
