package exit

import (
	"fmt"
	"io"
	"os"
)

// Process exit codes used by the remap CLI.
const (
	CodeOK           = 0 // mapping completed
	CodeFailure      = 1 // runtime failure (unreadable input, write error, ...)
	CodeUsage        = 2 // invalid flags or arguments
	CodeInvalidRules = 3 // rule set failed parsing or shape validation
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a successful exit result that outputs to stdout.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeOK,
		Message:  message,
	}
}

// Error creates a runtime failure result that outputs to stderr.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  message,
	}
}

// Errorf creates a runtime failure result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// Usagef creates a usage error result with formatted message.
func Usagef(format string, a ...any) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeUsage,
		Message:  fmt.Sprintf(format, a...),
	}
}

// RulesErrorf creates a rule-set validation failure result with formatted message.
func RulesErrorf(format string, a ...any) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeInvalidRules,
		Message:  fmt.Sprintf(format, a...),
	}
}
