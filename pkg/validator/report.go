package validator

import (
	"errors"
	"slices"
	"strings"
)

// Report is the error bag produced by Engine.Check. It maps attribute paths such as
// "3.email" to the ordered messages reported for them and remembers the order in
// which paths first failed.
type Report struct {
	paths  []string
	errors map[string][]string
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{errors: make(map[string][]string)}
}

// Add appends a message for the given attribute path.
func (r *Report) Add(path, message string) {
	if _, ok := r.errors[path]; !ok {
		r.paths = append(r.paths, path)
	}
	r.errors[path] = append(r.errors[path], message)
}

// Paths returns the failed attribute paths in the order they were reported.
func (r *Report) Paths() []string {
	return slices.Clone(r.paths)
}

// Messages returns the messages reported for path.
func (r *Report) Messages(path string) []string {
	return slices.Clone(r.errors[path])
}

// Has reports whether path has at least one message.
func (r *Report) Has(path string) bool {
	return len(r.errors[path]) > 0
}

// Errors returns a copy of the whole bag.
func (r *Report) Errors() map[string][]string {
	out := make(map[string][]string, len(r.errors))
	for path, messages := range r.errors {
		out[path] = slices.Clone(messages)
	}
	return out
}

// Len returns the number of failed attribute paths.
func (r *Report) Len() int {
	return len(r.paths)
}

func (r *Report) IsEmpty() bool {
	return len(r.paths) == 0
}

func (r *Report) Error() string {
	if r.IsEmpty() {
		return "validation failed"
	}

	parts := make([]string, 0, len(r.paths))
	for _, path := range r.paths {
		parts = append(parts, path+": "+strings.Join(r.errors[path], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsReport extracts a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var report *Report
	if errors.As(err, &report) {
		return report, true
	}
	return nil, false
}
