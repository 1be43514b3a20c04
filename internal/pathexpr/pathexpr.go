// Package pathexpr parses the path expression grammar used by mapping rules:
// a '$' root marker followed by '.<name>' property segments, '[<n>]' index
// segments and '[*]' wildcard segments, optionally terminated by an
// aggregate suffix such as '.max()'.
//
// The grammar is deliberately a strict subset of JSONPath: no filters, no
// descendant operator, no slices. Ad-hoc queries that need those go through
// the extractor package instead.
package pathexpr

import (
	"strconv"
	"strings"

	"remap/internal/aggregate"
)

// SegmentKind discriminates the three segment variants.
type SegmentKind uint8

const (
	KindProperty SegmentKind = iota + 1 // object field by exact key
	KindIndex                           // array element by exact position
	KindWildcard                        // every element of an array
)

// Segment is one atomic step of a path expression.
type Segment struct {
	Kind  SegmentKind
	Name  string // property name, set for KindProperty
	Index int    // array index, set for KindIndex
}

// Property returns a property segment matching an object field by key.
func Property(name string) Segment {
	return Segment{Kind: KindProperty, Name: name}
}

// Index returns an index segment matching an array element by position.
func Index(n int) Segment {
	return Segment{Kind: KindIndex, Index: n}
}

// Wildcard returns a wildcard segment matching every element of an array.
func Wildcard() Segment {
	return Segment{Kind: KindWildcard}
}

// String renders the segment in expression syntax.
func (s Segment) String() string {
	switch s.Kind {
	case KindProperty:
		return "." + s.Name
	case KindIndex:
		return "[" + strconv.Itoa(s.Index) + "]"
	case KindWildcard:
		return "[*]"
	default:
		return ""
	}
}

// Path is a parsed path expression: an ordered, non-empty segment sequence
// plus an optional trailing aggregate operation.
type Path struct {
	Segments  []Segment
	Aggregate aggregate.Op
}

// WildcardCount reports how many wildcard segments the path contains.
func (p Path) WildcardCount() int {
	count := 0
	for _, seg := range p.Segments {
		if seg.Kind == KindWildcard {
			count++
		}
	}
	return count
}

// String renders the path back into expression syntax.
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range p.Segments {
		b.WriteString(seg.String())
	}
	if p.Aggregate != aggregate.OpNone {
		b.WriteByte('.')
		b.WriteString(string(p.Aggregate))
		b.WriteString("()")
	}
	return b.String()
}
