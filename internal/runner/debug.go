package runner

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"remap/internal/aggregate"
	"remap/internal/mapper"
)

var debugSpew = spew.ConfigState{Indent: "  ", SortKeys: true, DisableMethods: true}

// traceRule outputs detailed rule application information when debug mode is
// enabled. Every application gets its own trace ID so interleaved stream
// output stays attributable.
func (r *Runner) traceRule(ev mapper.Event) {
	var b strings.Builder

	fmt.Fprintf(&b, "trace:   %s\n", uuid.New().String())
	fmt.Fprintf(&b, "source:  %s\n", ev.Rule.Source)
	fmt.Fprintf(&b, "target:  %s\n", ev.Rule.Target)
	if ev.Op != aggregate.OpNone {
		fmt.Fprintf(&b, "reduce:  %s\n", ev.Op)
	}

	fmt.Fprintf(&b, "matches: %d\n", len(ev.Matches))
	for _, m := range ev.Matches {
		fmt.Fprintf(&b, "  %s\n", m.Location)
	}

	if ev.Written {
		fmt.Fprintf(&b, "value:\n%s", debugSpew.Sdump(ev.Value))
	} else {
		b.WriteString("skipped: nothing to write\n")
	}

	if err := r.formatter.Debug(fmt.Sprintf("RULE %d", ev.Index+1), b.String()); err != nil {
		fmt.Printf("Error formatting debug trace: %v\n", err)
	}
}
