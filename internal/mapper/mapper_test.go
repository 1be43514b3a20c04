package mapper

import (
	"errors"
	"reflect"
	"testing"
)

func storeDocument() map[string]any {
	return map[string]any{
		"store": map[string]any{
			"book": []any{
				map[string]any{"title": "Sayings of the Century", "price": 8.95},
				map[string]any{"title": "Sword of Honour", "price": 12.99},
				map[string]any{"title": "Moby Dick", "price": 8.99},
			},
			"bicycle": map[string]any{"color": "red", "price": 19.95},
		},
	}
}

func TestApplyStoreSummary(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Source: "$.store.book[*].price.max()", Target: "$.storeSummary.maxPrice"},
		{Source: "$.store.book[*].price.sum()", Target: "$.storeSummary.totalCostOfBooks"},
		{Source: "$.store.book[*].price.count()", Target: "$.storeSummary.bookCount"},
	}

	got, err := Apply(storeDocument(), rules)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	want := map[string]any{
		"storeSummary": map[string]any{
			"maxPrice":         12.99,
			"totalCostOfBooks": 30.93,
			"bookCount":        3,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Apply = %#v, want %#v", got, want)
	}
}

func TestApplyWildcardRoundTrip(t *testing.T) {
	t.Parallel()

	// Extracting via a wildcard source and writing back through a wildcard
	// target must reproduce the source array's positional ordering.
	rules := []Rule{
		{Source: "$.store.book[*].price", Target: "$.store.novel[*].cost"},
	}

	got, err := Apply(storeDocument(), rules)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	want := map[string]any{
		"store": map[string]any{
			"novel": []any{
				map[string]any{"cost": 8.95},
				map[string]any{"cost": 12.99},
				map[string]any{"cost": 8.99},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Apply = %#v, want %#v", got, want)
	}
}

func TestApplySingleMatchWritesScalar(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Source: "$.store.bicycle.color", Target: "$.summary.bikeColor"},
	}

	got, err := Apply(storeDocument(), rules)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	want := map[string]any{"summary": map[string]any{"bikeColor": "red"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Apply = %#v, want %#v", got, want)
	}
}

func TestApplyMultipleMatchesWithoutWildcardTargetWritesList(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Source: "$.store.book[*].title", Target: "$.summary.titles"},
	}

	got, err := Apply(storeDocument(), rules)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	want := map[string]any{
		"summary": map[string]any{
			"titles": []any{"Sayings of the Century", "Sword of Honour", "Moby Dick"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Apply = %#v, want %#v", got, want)
	}
}

func TestApplyLastWriteWins(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Source: "$.store.book[0].price", Target: "$.summary.price"},
		{Source: "$.store.book[1].price", Target: "$.summary.price"},
	}

	got, err := Apply(storeDocument(), rules)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	want := map[string]any{"summary": map[string]any{"price": 12.99}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Apply = %#v, want %#v", got, want)
	}
}

func TestApplySkipsAndEmptyBehaviour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rules []Rule
		want  any
	}{
		{
			name: "no matches with concrete target leaves key absent",
			rules: []Rule{
				{Source: "$.store.magazine[0].title", Target: "$.summary.magazine"},
				{Source: "$.store.bicycle.color", Target: "$.summary.bikeColor"},
			},
			want: map[string]any{"summary": map[string]any{"bikeColor": "red"}},
		},
		{
			name: "no matches with wildcard target writes empty array",
			rules: []Rule{
				{Source: "$.store.magazine[*].title", Target: "$.summary.magazines[*].title"},
			},
			want: map[string]any{"summary": map[string]any{"magazines": []any{}}},
		},
		{
			name: "undefined reduction over empty input skips write",
			rules: []Rule{
				{Source: "$.store.magazine[*].price.max()", Target: "$.summary.maxMagazinePrice"},
			},
			want: nil,
		},
		{
			name: "sum over empty input writes zero",
			rules: []Rule{
				{Source: "$.store.magazine[*].price.sum()", Target: "$.summary.magazineTotal"},
			},
			want: map[string]any{"summary": map[string]any{"magazineTotal": float64(0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Apply(storeDocument(), tt.rules)
			if err != nil {
				t.Fatalf("Apply error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Apply = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	t.Parallel()

	doc := storeDocument()
	rules := []Rule{
		{Source: "$.store.book[*].price", Target: "$.store.book[*].price"},
	}

	if _, err := Apply(doc, rules); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if !reflect.DeepEqual(doc, storeDocument()) {
		t.Fatalf("source document mutated: %#v", doc)
	}
}

func TestApplyRejectsInvalidRulesBeforeWriting(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Source: "$.store.bicycle.color", Target: "$.summary.bikeColor"},
		{Source: "$.store.book[0", Target: "$.broken"},
	}

	got, err := Apply(storeDocument(), rules)
	if !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("error = %v, want ErrInvalidRules", err)
	}
	if got != nil {
		t.Fatalf("expected no partial output, got %#v", got)
	}
}

func TestApplyTraceObservesEveryRule(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Source: "$.store.book[*].price.max()", Target: "$.summary.maxPrice"},
		{Source: "$.store.magazine[0]", Target: "$.summary.magazine"},
	}

	var events []Event
	if _, err := ApplyWithTrace(storeDocument(), rules, func(ev Event) {
		events = append(events, ev)
	}); err != nil {
		t.Fatalf("ApplyWithTrace error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if !events[0].Written || events[0].Value != 12.99 || len(events[0].Matches) != 3 {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Written {
		t.Fatalf("second rule should be a skip: %+v", events[1])
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rules   []Rule
		wantErr bool
	}{
		{
			name:  "valid rules",
			rules: []Rule{{Source: "$.a[*].b", Target: "$.c[*].d"}},
		},
		{
			name:  "empty rule list",
			rules: nil,
		},
		{
			name:    "missing source",
			rules:   []Rule{{Target: "$.c"}},
			wantErr: true,
		},
		{
			name:    "missing target",
			rules:   []Rule{{Source: "$.a"}},
			wantErr: true,
		},
		{
			name:    "blank source",
			rules:   []Rule{{Source: "   ", Target: "$.c"}},
			wantErr: true,
		},
		{
			name:    "malformed source",
			rules:   []Rule{{Source: "$.a[", Target: "$.c"}},
			wantErr: true,
		},
		{
			name:    "malformed target",
			rules:   []Rule{{Source: "$.a", Target: "c.d"}},
			wantErr: true,
		},
		{
			name:    "aggregate on target",
			rules:   []Rule{{Source: "$.a", Target: "$.c.max()"}},
			wantErr: true,
		},
		{
			name:    "two wildcards on target",
			rules:   []Rule{{Source: "$.a", Target: "$.c[*].d[*].e"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.rules)
			if tt.wantErr && !errors.Is(err, ErrInvalidRules) {
				t.Fatalf("error = %v, want ErrInvalidRules", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
