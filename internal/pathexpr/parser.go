package pathexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"remap/internal/aggregate"
)

// ErrSyntax is the sentinel error for all path expression syntax failures.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrSyntax = errors.New("path syntax error")

// Parse converts a textual path expression into a Path.
//
// A trailing '.<name>()' token is recognized as an aggregate suffix only when
// <name> belongs to the closed aggregate set; any other '<name>()' parses as
// a plain property segment, so a typo like '.maxx()' yields no matches rather
// than silently returning the unreduced list.
func Parse(expr string) (Path, error) {
	if err := validateExpression(expr); err != nil {
		return Path{}, err
	}

	i := 1 // current parsing index in expr, after '$'
	var segs []Segment

	for i < len(expr) {
		seg, newIndex, err := parseSegment(expr, i)
		if err != nil {
			return Path{}, err
		}
		segs = append(segs, seg)
		i = newIndex
	}

	if len(segs) == 0 {
		return Path{}, fmt.Errorf("%w: expression must contain at least one segment", ErrSyntax)
	}

	p := stripAggregate(segs)
	if len(p.Segments) == 0 {
		return Path{}, fmt.Errorf("%w: aggregate suffix requires at least one preceding segment", ErrSyntax)
	}

	return p, nil
}

func validateExpression(expr string) error {
	if expr == "" {
		return fmt.Errorf("%w: expression cannot be empty", ErrSyntax)
	}
	if expr[0] != '$' || (len(expr) > 1 && expr[1] != '.' && expr[1] != '[') {
		return fmt.Errorf("%w: expression must start with '$.', or '$['", ErrSyntax)
	}
	return nil
}

func parseSegment(expr string, i int) (Segment, int, error) {
	switch expr[i] {
	case '.':
		return parseDotSegment(expr, i)
	case '[':
		return parseBracketSegment(expr, i)
	default:
		return Segment{}, i, fmt.Errorf("%w: unexpected token %q at position %d, expected '.' or '['", ErrSyntax, expr[i], i)
	}
}

func parseDotSegment(expr string, i int) (Segment, int, error) {
	i++ // consume '.'
	if i >= len(expr) {
		return Segment{}, i, fmt.Errorf("%w: path cannot end with '.'", ErrSyntax)
	}
	if expr[i] == '.' {
		return Segment{}, i, fmt.Errorf("%w: descendant operator '..' is not supported", ErrSyntax)
	}

	start := i
	for i < len(expr) && expr[i] != '.' && expr[i] != '[' {
		i++
	}

	name := expr[start:i]
	if name == "" {
		return Segment{}, i, fmt.Errorf("%w: empty property name at position %d", ErrSyntax, start)
	}

	return Property(name), i, nil
}

func parseBracketSegment(expr string, i int) (Segment, int, error) {
	end := strings.IndexByte(expr[i:], ']')
	if end == -1 {
		return Segment{}, i, fmt.Errorf("%w: unterminated '[' at position %d", ErrSyntax, i)
	}
	end += i

	content := expr[i+1 : end]
	next := end + 1

	if content == "*" {
		return Wildcard(), next, nil
	}

	n, err := strconv.Atoi(content)
	if err != nil || n < 0 {
		return Segment{}, i, fmt.Errorf("%w: bracket content %q at position %d, expected non-negative index or '*'", ErrSyntax, content, i)
	}

	return Index(n), next, nil
}

// stripAggregate peels a recognized aggregate suffix off the segment stream.
func stripAggregate(segs []Segment) Path {
	last := segs[len(segs)-1]
	if last.Kind != KindProperty || !strings.HasSuffix(last.Name, "()") {
		return Path{Segments: segs}
	}

	op, ok := aggregate.FromString(strings.TrimSuffix(last.Name, "()"))
	if !ok {
		return Path{Segments: segs}
	}

	return Path{Segments: segs[:len(segs)-1], Aggregate: op}
}
