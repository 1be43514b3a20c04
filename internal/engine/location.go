package engine

import (
	"strconv"
	"strings"
)

// LocationStep is one step of a concrete document location: either an object
// key or an array index.
type LocationStep struct {
	IsIndex bool
	Name    string // object key, set when !IsIndex
	Index   int    // array index, set when IsIndex
}

// Location is the ordered sequence of keys and indices locating a matched
// value within the source document.
type Location []LocationStep

// withName returns a new location extended by an object key. The receiver is
// copied so sibling search states never share backing storage.
func (l Location) withName(name string) Location {
	return l.extend(LocationStep{Name: name})
}

// withIndex returns a new location extended by an array index.
func (l Location) withIndex(index int) Location {
	return l.extend(LocationStep{IsIndex: true, Index: index})
}

func (l Location) extend(step LocationStep) Location {
	extended := make(Location, len(l)+1)
	copy(extended, l)
	extended[len(l)] = step
	return extended
}

// String renders the location as a canonical path expression, e.g.
// "$.store.book[1].price".
func (l Location) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, step := range l {
		if step.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(step.Index))
			b.WriteByte(']')
		} else {
			b.WriteByte('.')
			b.WriteString(step.Name)
		}
	}
	return b.String()
}
