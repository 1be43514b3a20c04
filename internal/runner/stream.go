package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"remap/internal/exit"
	"remap/internal/mapper"
)

// maxLineSize bounds a single NDJSON document to 16 MiB.
const maxLineSize = 16 << 20

// runStream applies the rule set to every NDJSON line on stdin, writing one
// output document per line. The rate limiter paces consumption so downstream
// sinks are not overwhelmed.
func (r *Runner) runStream(ctx context.Context) int {
	scanner := bufio.NewScanner(r.stdin)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var trace mapper.Trace
	if r.config.Debug {
		trace = r.traceRule
	}

	line := 0
	for scanner.Scan() {
		line++

		if err := r.limiter.Wait(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "stream stopped: %v\n", err)
			return exit.CodeFailure
		}

		text := scanner.Bytes()
		if len(bytes.TrimSpace(text)) == 0 {
			continue
		}

		if err := r.streamOne(text, trace); err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
			return exit.CodeFailure
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
		return exit.CodeFailure
	}

	return exit.CodeOK
}

func (r *Runner) streamOne(text []byte, trace mapper.Trace) error {
	// json.Number keeps numeric values byte-exact across the round trip.
	decoder := json.NewDecoder(bytes.NewReader(text))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out, err := mapper.ApplyWithTrace(doc, r.rules, trace)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(r.stdout, "%s\n", encoded)
	return err
}
