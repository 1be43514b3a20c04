package engine

import (
	"reflect"
	"testing"

	"github.com/theory/jsonpath"
)

// The mapping grammar is a strict subset of RFC 9535, so for any expression
// without an aggregate suffix the engine must agree with a conformant
// JSONPath implementation on both values and result order.
func TestProcessAgreesWithJSONPathOracle(t *testing.T) {
	t.Parallel()

	doc := storeDocument()
	doc["matrix"] = []any{
		[]any{1.0, 2.0},
		[]any{3.0},
	}

	exprs := []string{
		"$.store.book[0].title",
		"$.store.book[2]",
		"$.store.book[*].price",
		"$.store.book[*].title",
		"$.store.bicycle.color",
		"$.matrix[*][*]",
		"$.matrix[1][0]",
		"$.store.magazine",
		"$.store.book[9]",
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			t.Parallel()

			oracle, err := jsonpath.Parse(expr)
			if err != nil {
				t.Fatalf("oracle rejected %q: %v", expr, err)
			}
			want := oracle.Select(doc)

			got := Values(Process(doc, mustParse(t, expr).Segments))

			if len(got) != len(want) {
				t.Fatalf("got %d matches, oracle found %d", len(got), len(want))
			}
			for i := range got {
				if !reflect.DeepEqual(got[i], want[i]) {
					t.Fatalf("match %d = %v, oracle found %v", i, got[i], want[i])
				}
			}
		})
	}
}
