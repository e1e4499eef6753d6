// Package validation checks written outputs against what the operation intended.
package validation

import (
	"path/filepath"
	"strings"

	"github.com/five82/vedit/internal/reporter"
)

// Step represents a single validation check.
type Step struct {
	Name    string
	Passed  bool
	Details string
}

// Result contains the outcome of validating one output file.
type Result struct {
	Path  string
	Steps []Step
}

// IsValid returns true if every step passed.
func (r *Result) IsValid() bool {
	for _, s := range r.Steps {
		if !s.Passed {
			return false
		}
	}
	return true
}

// Failures returns "name: details" for each failed step.
func (r *Result) Failures() []string {
	var failures []string
	for _, s := range r.Steps {
		if !s.Passed {
			failures = append(failures, s.Name+": "+s.Details)
		}
	}
	return failures
}

// Summary joins the failures into one line.
func (r *Result) Summary() string {
	return strings.Join(r.Failures(), "; ")
}

func (r *Result) add(name string, passed bool, details string) {
	r.Steps = append(r.Steps, Step{Name: name, Passed: passed, Details: details})
}

// Report converts r for the reporter.
func (r *Result) Report() reporter.ValidationSummary {
	steps := make([]reporter.ValidationStep, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = reporter.ValidationStep{Name: s.Name, Passed: s.Passed, Details: s.Details}
	}
	return reporter.ValidationSummary{
		File:   filepath.Base(r.Path),
		Passed: r.IsValid(),
		Steps:  steps,
	}
}
