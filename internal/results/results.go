// Package results accumulates per-file mapping outcomes for summary output.
package results

import (
	"time"
)

// FileResult records the outcome of mapping one input document.
type FileResult struct {
	Filename  string
	RuleCount int
	Duration  time.Duration
	Error     error
}

// FileResultBuilder assembles a FileResult incrementally while a file is
// being processed.
type FileResultBuilder struct {
	filename  string
	ruleCount int
	duration  time.Duration
	err       error
}

func NewFileResultBuilder(filename string) *FileResultBuilder {
	return &FileResultBuilder{
		filename: filename,
	}
}

func (b *FileResultBuilder) WithRuleCount(count int) *FileResultBuilder {
	b.ruleCount = count
	return b
}

func (b *FileResultBuilder) WithDuration(duration time.Duration) *FileResultBuilder {
	b.duration = duration
	return b
}

func (b *FileResultBuilder) WithError(err error) *FileResultBuilder {
	b.err = err
	return b
}

func (b *FileResultBuilder) Build() FileResult {
	return FileResult{
		Filename:  b.filename,
		RuleCount: b.ruleCount,
		Duration:  b.duration,
		Error:     b.err,
	}
}

// Summary aggregates the outcomes of one remap invocation.
type Summary struct {
	FileResults    []FileResult
	ExecutedFiles  int
	AppliedRules   int
	SucceededFiles int
	FailedFiles    int
	TotalDuration  time.Duration
}

func NewSummary(expectedFiles int) *Summary {
	return &Summary{
		FileResults: make([]FileResult, 0, expectedFiles),
	}
}

func (s *Summary) Add(builder *FileResultBuilder) {
	result := builder.Build()

	s.FileResults = append(s.FileResults, result)
	s.ExecutedFiles++
	s.AppliedRules += result.RuleCount

	if result.Error != nil {
		s.FailedFiles++
	} else {
		s.SucceededFiles++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

func (s *Summary) SuccessPercentage() float64 {
	if s.ExecutedFiles == 0 {
		return 0
	}
	return (float64(s.SucceededFiles) / float64(s.ExecutedFiles)) * 100
}

func (s *Summary) FailurePercentage() float64 {
	if s.ExecutedFiles == 0 {
		return 0
	}
	return (float64(s.FailedFiles) / float64(s.ExecutedFiles)) * 100
}
