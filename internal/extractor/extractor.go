// Package extractor evaluates full RFC 9535 JSONPath queries against decoded
// documents. It backs the ad-hoc -query mode, which deliberately supports the
// richer syntax (filters, descendant segments, slices) that the mapping
// grammar excludes.
package extractor

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"
)

var (
	// ErrInvalidInput indicates a missing document or empty expression.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExtraction indicates a malformed JSONPath expression.
	ErrExtraction = errors.New("extraction failed")
	// ErrNotFound indicates the query matched nothing.
	ErrNotFound = errors.New("no matches found")
)

// Query evaluates a JSONPath expression against the document and returns all
// matches in document order.
func Query(doc any, pathExpr string) ([]any, error) {
	if pathExpr == "" {
		return nil, fmt.Errorf("%w: JSONPath expression is empty", ErrInvalidInput)
	}

	path, err := jsonpath.Parse(pathExpr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrExtraction, pathExpr, err)
	}

	results := path.Select(doc)
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	return results, nil
}

// QueryFirst returns only the first match of a JSONPath expression.
func QueryFirst(doc any, pathExpr string) (any, error) {
	results, err := Query(doc, pathExpr)
	if err != nil {
		return nil, err
	}

	return results[0], nil
}
