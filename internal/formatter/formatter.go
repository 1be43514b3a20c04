package formatter

import (
	"remap/internal/results"
)

// Formatter defines the interface for different output formats.
// Implementations are responsible for determining the output device (stdout, file, etc.).
type Formatter interface {
	// Format renders a run summary. The formatter decides where to output.
	Format(summary *results.Summary) error

	// Debug renders a labelled block of debug content.
	Debug(label string, content string) error
}
