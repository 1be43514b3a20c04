// Package stdout renders run summaries and debug blocks as plain text.
package stdout

import (
	"fmt"
	"io"
	"os"

	"remap/internal/formatter"
	"remap/internal/results"
)

const separator = "--------------------------------------------------------------------------------"

// Formatter implements stdout-based output formatting.
type Formatter struct {
	writer io.Writer
}

// New creates a new stdout formatter that outputs to stderr, keeping the
// mapped documents on stdout clean for piping.
func New() formatter.Formatter {
	return &Formatter{
		writer: os.Stderr,
	}
}

// NewWithWriter creates a new stdout formatter with a custom writer.
// This is useful for testing or redirecting output to files.
func NewWithWriter(writer io.Writer) formatter.Formatter {
	return &Formatter{
		writer: writer,
	}
}

// Format renders per-file results followed by a summary block.
func (f *Formatter) Format(s *results.Summary) error {
	for _, fileResult := range s.FileResults {
		status := "Success"
		if fileResult.Error != nil {
			status = fmt.Sprintf("Failed: %v", fileResult.Error)
		}
		_, err := fmt.Fprintf(f.writer, "%s: %s (%d rule(s) in %d ms)\n",
			fileResult.Filename, status, fileResult.RuleCount, fileResult.Duration.Milliseconds())
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(f.writer, separator); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(f.writer, "Mapped files:    %d\n", s.ExecutedFiles); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Applied rules:   %d\n", s.AppliedRules); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Succeeded files: %d (%.1f%%)\n", s.SucceededFiles, s.SuccessPercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Failed files:    %d (%.1f%%)\n", s.FailedFiles, s.FailurePercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Duration:        %d ms\n", s.TotalDuration.Milliseconds()); err != nil {
		return err
	}

	return nil
}

// Debug renders a labelled debug block.
func (f *Formatter) Debug(label string, content string) error {
	if _, err := fmt.Fprintf(f.writer, "[%s]\n", label); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f.writer, content); err != nil {
		return err
	}

	return nil
}
